package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"
	"golang.org/x/term"

	"hmis/cmd/client/cmd/queue"
	"hmis/cmd/client/cmd/sync"
	"hmis/internal/app/client"
	"hmis/internal/app/client/config"
	"hmis/internal/utils/logger"
)

var (
	cfgFile   string
	serverURL string
	queuePath string
	noColor   bool
	app       *client.App
)

var rootCmd = &cobra.Command{
	Use:   "hmis",
	Short: "HMIS - офлайн-клиент клиники",
	Long: `Клиент для работы без связи с сервером: записи пациентов, замеров,
рецептов, историй болезни и извещений копятся в локальной очереди и
отправляются на сервер командой sync, когда связь появляется.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	if noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	if queuePath != "" {
		cfg.QueuePath = queuePath
	}

	log := newLogger(cfg.Env)

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(client.WithApp(cmd.Context(), app))
	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

// newLogger пишет в stderr, чтобы не смешивать журнал с выводом команд.
func newLogger(env string) *slog.Logger {
	if env == config.EnvLocal {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return logger.New(env)
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		viper.AddConfigPath(filepath.Join(home, ".hmis"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return config.MustLoad(), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера HMIS (host:port)")
	rootCmd.PersistentFlags().StringVar(&queuePath, "queue", "", "путь к файлу локальной очереди")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "отключить цветной вывод")

	rootCmd.AddCommand(queue.QueueCmd)
	queue.QueueCmd.AddCommand(queue.AddCmd)
	queue.QueueCmd.AddCommand(queue.ListCmd)

	rootCmd.AddCommand(sync.SyncCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
}
