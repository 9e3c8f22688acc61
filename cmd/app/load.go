package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/domain"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/model"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/repository"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/state"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/authenticator"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/kafka"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/logger"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/session"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/storage"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/ws"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xredis"
	"github.com/BurntSushi/toml"
	"github.com/bwmarrin/snowflake"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func (s *srv) loadConfig() {
	path := os.Getenv("SIDEQUEST_CONFIG")
	if path == "" {
		path = "config.toml"
	}

	if _, err := toml.DecodeFile(path, &s.cfg); err != nil {
		log.Fatalf("Cannot load config %s: %v", path, err)
	}

	s.ctx = xcontext.WithConfigs(context.Background(), s.cfg)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.cfg.Env == "local" || s.cfg.Env == "dev" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) loadEndpoint() {
	engine := authenticator.NewTokenEngine[model.AccessToken](
		s.cfg.Auth.TokenSecret, s.cfg.Auth.AccessToken.Expiration.Duration)
	s.ctx = xcontext.WithTokenEngine(s.ctx, engine)

	node, err := snowflake.NewNode(1)
	if err != nil {
		log.Fatalf("Cannot create snowflake node: %v", err)
	}

	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.Open(s.cfg.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(s.cfg.Storage)
}

func (s *srv) loadSession() {
	s.sessions = session.NewManager(session.NewFileStore(s.cfg.Session.Path))
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.questRepo = repository.NewQuestRepository()
	s.rewardRepo = repository.NewRewardRepository()
	s.submissionRepo = repository.NewSubmissionRepository()
	s.redemptionRepo = repository.NewRedemptionRepository()
}

// loadPublisher picks the realtime transport. Kafka when a broker is
// configured, redis pubsub otherwise.
func (s *srv) loadPublisher() {
	if s.cfg.Kafka.Addr != "" {
		publisher, err := kafka.NewPublisher("sidequest", strings.Split(s.cfg.Kafka.Addr, ","))
		if err != nil {
			log.Fatalf("Cannot create kafka publisher: %v", err)
		}

		s.publisher = publisher
		return
	}

	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		log.Fatalf("Cannot connect to redis: %v", err)
	}

	s.publisher = xredis.NewPublisher(client)
}

func (s *srv) loadDomains() {
	oauth2Service, err := authenticator.NewOAuth2Service(s.ctx, s.cfg.Auth.OAuth2)
	if err != nil {
		log.Fatalf("Cannot create oauth2 service: %v", err)
	}

	s.authDomain = domain.NewAuthDomain(s.userRepo, oauth2Service, s.sessions)
	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.questDomain = domain.NewQuestDomain(s.questRepo, s.userRepo, s.publisher)
	s.rewardDomain = domain.NewRewardDomain(s.rewardRepo, s.redemptionRepo, s.userRepo, s.publisher)
	s.submissionDomain = domain.NewSubmissionDomain(
		s.submissionRepo, s.questRepo, s.userRepo, s.publisher, s.storage)
}

func (s *srv) loadSynchronizer() {
	s.store = state.NewStore(s.cfg.Sync.NotificationBuffer)
	s.synchronizer = state.NewSynchronizer(
		s.store,
		s.sessions,
		s.authDomain,
		s.userDomain,
		s.questDomain,
		s.rewardDomain,
		s.submissionDomain,
	)
}

func (s *srv) loadSubscriber() {
	handler := s.synchronizer.Mirror().HandleChange
	topics := []string{s.cfg.Sync.ChangeTopic}

	if s.cfg.Kafka.Addr != "" {
		subscriber, err := kafka.NewSubscriber(
			"sidequest", strings.Split(s.cfg.Kafka.Addr, ","), topics, handler)
		if err != nil {
			log.Fatalf("Cannot create kafka subscriber: %v", err)
		}

		s.subscriber = subscriber
		s.synchronizer.SetSubscriber(subscriber)
		return
	}

	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		log.Fatalf("Cannot connect to redis: %v", err)
	}

	s.subscriber = xredis.NewSubscriber(client, topics, handler)
	s.synchronizer.SetSubscriber(s.subscriber)
}

func (s *srv) loadWsHub() {
	s.hub = ws.NewHub()
}
