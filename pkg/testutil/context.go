package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Aqeel98/sidequest-travel-app-sub000/config"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/model"
	"github.com/Aqeel98/sidequest-travel-app-sub000/migration"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/authenticator"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/logger"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "testing",
		Auth: config.AuthConfigs{
			AdminEmail:  "admin@example.com",
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: config.Duration{Duration: time.Minute},
			},
		},
		Sync: config.SyncConfigs{
			BootTimeout:        config.Duration{Duration: time.Minute},
			ChangeTopic:        "changes",
			NotificationBuffer: 16,
		},
		File: config.FileConfigs{
			MaxSize:       2 * 1024 * 1024,
			MaxProofWidth: 512,
		},
	}
}

// MockContext builds a context carrying everything a domain call needs, over
// a fresh in-memory database.
func MockContext(t *testing.T) context.Context {
	cfg := MockConfigs()

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration.Duration))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	ctx = xcontext.WithSnowFlake(ctx, node)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	ctx = xcontext.WithDB(ctx, db)
	require.NoError(t, migration.AutoMigrate(ctx))

	return ctx
}

func MockContextWithUserID(t *testing.T, userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(t), userID)
}
