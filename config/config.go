package config

import (
	"fmt"
	"time"

	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/storage"
)

// Duration lets toml configs spell durations as "12s" or "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type Configs struct {
	Env string `toml:"env"`

	Database DatabaseConfigs  `toml:"database"`
	Auth     AuthConfigs      `toml:"auth"`
	Session  SessionConfigs   `toml:"session"`
	Sync     SyncConfigs      `toml:"sync"`
	File     FileConfigs      `toml:"file"`
	Storage  storage.S3Config `toml:"storage"`
	Redis    RedisConfigs     `toml:"redis"`
	Kafka    KafkaConfigs     `toml:"kafka"`
	WsServer ServerConfigs    `toml:"ws_server"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

type AuthConfigs struct {
	// AdminEmail is the fixed administrator address. A repaired profile gets
	// the admin role only if its email matches this value.
	AdminEmail  string       `toml:"admin_email"`
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
	OAuth2      OAuth2Config `toml:"oauth2"`
}

type TokenConfigs struct {
	Name       string   `toml:"name"`
	Expiration Duration `toml:"expiration"`
}

type OAuth2Config struct {
	Name         string `toml:"name"`
	Issuer       string `toml:"issuer"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	IDField      string `toml:"id_field"`
}

type SessionConfigs struct {
	// Path of the file the recovered session survives restarts in.
	Path string `toml:"path"`
}

type SyncConfigs struct {
	// BootTimeout is the safety valve of the boot sequence. When it fires,
	// loading is cleared and the guard released without canceling in-flight
	// requests.
	BootTimeout Duration `toml:"boot_timeout"`

	// ChangeTopic is the pubsub topic carrying row change events.
	ChangeTopic string `toml:"change_topic"`

	// NotificationBuffer bounds the derived notification stream.
	NotificationBuffer int `toml:"notification_buffer"`
}

type FileConfigs struct {
	MaxSize       int64 `toml:"max_size"`
	MaxProofWidth uint  `toml:"max_proof_width"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr string `toml:"addr"`
}
