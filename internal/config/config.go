package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Postgres     DBConfig
	Redis        RedisConfig
	S3           S3Config
	MediaConvert MediaConvertConfig
	CDN          CDNConfig
	Upload       UploadConfig
	Thumbnail    ThumbnailConfig
	Poller       PollerConfig
	Logger       Logger
}

type ServerConfig struct {
	AppVersion string
	Port       string
	Mode       string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	PgDriver string
	SSLMode  string
}

type RedisConfig struct {
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
}

type S3Config struct {
	Endpoint     string
	Region       string
	AccessKey    string
	SecretKey    string
	Bucket       string
	UploadFolder string
	OutputFolder string
}

type MediaConvertConfig struct {
	Endpoint string
	RoleArn  string
	Queue    string
}

type CDNConfig struct {
	Domain string
}

type UploadConfig struct {
	// SessionTTLHours bounds how long a PENDING session may sit before the
	// reaper aborts its multipart upload and drops the row.
	SessionTTLHours int
}

type ThumbnailConfig struct {
	Dir         string
	FFmpegPath  string
	FFprobePath string
	Concurrency int
}

type PollerConfig struct {
	IntervalSeconds     int
	ReapIntervalMinutes int
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

func (u UploadConfig) SessionTTL() time.Duration {
	if u.SessionTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(u.SessionTTLHours) * time.Hour
}

func (p PollerConfig) Interval() time.Duration {
	if p.IntervalSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(p.IntervalSeconds) * time.Second
}

func (p PollerConfig) ReapInterval() time.Duration {
	if p.ReapIntervalMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(p.ReapIntervalMinutes) * time.Minute
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
