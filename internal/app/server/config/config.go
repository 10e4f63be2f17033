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
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress      = ":8080"
	defaultDataDir         = "."
	defaultDatabaseFile    = "hmis.db"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	Env    string
	DB     DB
	Server Server
	Logger Logger
}

type DB struct {
	Path string `env:"DATABASE_PATH"`
}

type Server struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// MustLoad читает .env (если есть) и переменные окружения.
func MustLoad() *Config {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			panic(fmt.Sprintf("failed to load %s: %v", envPath, err))
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	return load(v)
}

func load(v *viper.Viper) *Config {
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", defaultRunAddress)
	v.SetDefault("log_level", "info")
	v.SetDefault("hmis_data_dir", defaultDataDir)
	v.SetDefault("read_timeout", defaultReadTimeout)
	v.SetDefault("write_timeout", defaultWriteTimeout)
	v.SetDefault("shutdown_timeout", defaultShutdownTimeout)

	dbPath := v.GetString("database_path")
	if dbPath == "" {
		dbPath = filepath.Join(v.GetString("hmis_data_dir"), defaultDatabaseFile)
	}

	return &Config{
		Env: v.GetString("app_env"),
		DB:  DB{Path: dbPath},
		Server: Server{
			RunAddress:      v.GetString("run_address"),
			ReadTimeout:     v.GetDuration("read_timeout"),
			WriteTimeout:    v.GetDuration("write_timeout"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Logger: Logger{LogLevel: v.GetString("log_level")},
	}
}
