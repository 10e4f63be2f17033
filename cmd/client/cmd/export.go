package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hmis/internal/app/client"
	"hmis/internal/domain/export"
)

var outputPath string

var exportCmd = &cobra.Command{
	Use:       "export <patients|vitals|prescriptions|complete|legacy>",
	Short:     "Скачать CSV-выгрузку с сервера",
	Example:   "  hmis export vitals -o vitals.csv",
	Args:      cobra.ExactArgs(1),
	ValidArgs: kindNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		kind, ok := parseKind(args[0])
		if !ok {
			return fmt.Errorf("неизвестная выгрузка %q, ожидается одна из %v", args[0], kindNames())
		}

		file, err := app.Export(cmd.Context(), kind)
		if err != nil {
			return fmt.Errorf("ошибка выгрузки: %w", err)
		}

		path := outputPath
		if path == "" {
			path = file.Name
		}
		if err := os.WriteFile(path, file.Body, 0o600); err != nil {
			return fmt.Errorf("ошибка записи файла: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Сохранено: %s (%d байт)\n", path, len(file.Body))
		return nil
	},
}

func parseKind(s string) (export.Kind, bool) {
	for _, k := range export.Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

func kindNames() []string {
	names := make([]string, 0, len(export.Kinds))
	for _, k := range export.Kinds {
		names = append(names, string(k))
	}
	return names
}

func init() {
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "куда сохранить файл (по умолчанию имя от сервера)")
}
