package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultServerAddress  = "localhost:8080"
	defaultConfigDir      = ".hmis"
	defaultQueueFile      = "queue.db"
	defaultRequestTimeout = 30 * time.Second
	defaultBatchSize      = 500
)

type Config struct {
	Env            string        `mapstructure:"app_env"`
	ServerAddress  string        `mapstructure:"server_address"`
	EnableTLS      bool          `mapstructure:"enable_tls"`
	ConfigDir      string        `mapstructure:"config_dir"`
	QueuePath      string        `mapstructure:"queue_path"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	BatchSize      int           `mapstructure:"batch_size"`
}

// MustLoad загружает конфигурацию клиента: .env, переменные окружения и
// файл конфигурации, если его уже прочитал глобальный viper.
func MustLoad() *Config {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	cfg, err := load(viper.GetViper(), homeDir)
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}

	return cfg
}

func load(v *viper.Viper, homeDir string) (*Config, error) {
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("server_address", defaultServerAddress)
	v.SetDefault("enable_tls", false)
	v.SetDefault("config_dir", defaultConfigDir)
	v.SetDefault("request_timeout", defaultRequestTimeout)
	v.SetDefault("batch_size", defaultBatchSize)

	configDir := v.GetString("config_dir")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	queuePath := v.GetString("queue_path")
	if queuePath == "" {
		queuePath = filepath.Join(configDir, defaultQueueFile)
	}

	cfg := &Config{
		Env:            v.GetString("app_env"),
		ServerAddress:  v.GetString("server_address"),
		EnableTLS:      v.GetBool("enable_tls"),
		ConfigDir:      configDir,
		QueuePath:      queuePath,
		RequestTimeout: v.GetDuration("request_timeout"),
		BatchSize:      v.GetInt("batch_size"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address не может быть пустым")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size должен быть больше нуля")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout должен быть больше нуля")
	}
	return nil
}

// BaseURL - адрес сервера со схемой.
func (c *Config) BaseURL() string {
	if c.EnableTLS {
		return "https://" + c.ServerAddress
	}
	return "http://" + c.ServerAddress
}
