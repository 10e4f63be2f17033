package queue

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hmis/internal/app/client"
	"hmis/internal/domain/sync"
)

var (
	entity   string
	filePath string
	limit    int
)

var QueueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Локальная очередь записей",
	Long: `Записи, снятые без связи с сервером, копятся в локальной очереди
и отправляются командой sync.`,
}

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Добавить записи из JSON-файла",
	Long: `Добавляет в очередь каждый элемент JSON-массива из файла (или stdin при --file -).
Повторно добавленные записи с тем же содержимым пропускаются.`,
	Example: "  hmis queue add --entity patients --file patients.json",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		e, err := sync.ParseEntity(entity)
		if err != nil {
			return fmt.Errorf("неизвестный вид записей %q, ожидается один из %v", entity, sync.Entities)
		}

		data, err := readInput(cmd, filePath)
		if err != nil {
			return err
		}

		res, err := app.Enqueue(cmd.Context(), e, data)
		if err != nil {
			return fmt.Errorf("ошибка добавления в очередь: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Добавлено в очередь %s: %d\n", e, res.Added)
		if res.Duplicates > 0 {
			color.New(color.FgYellow).Fprintf(out, "  Пропущено повторов: %d\n", res.Duplicates)
		}
		return nil
	},
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать очередь",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		var e sync.Entity
		if entity != "" {
			if e, err = sync.ParseEntity(entity); err != nil {
				return fmt.Errorf("неизвестный вид записей %q", entity)
			}
		}

		pending, err := app.Pending(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "=== Очередь ===")
		total := 0
		for _, kind := range sync.Entities {
			n := pending[kind]
			total += n
			fmt.Fprintf(out, "  %-18s %d\n", kind, n)
		}
		if total == 0 {
			fmt.Fprintln(out, "Очередь пуста.")
			return nil
		}

		items, err := app.Queued(cmd.Context(), e, limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		for _, it := range items {
			fmt.Fprintf(out, "%6d  %-18s %s  %s\n", it.ID, it.Entity, it.CreatedAt, it.Digest[:12])
		}
		return nil
	},
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("укажите файл через --file")
	}
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла: %w", err)
	}
	return data, nil
}

func init() {
	AddCmd.Flags().StringVarP(&entity, "entity", "e", "", "вид записей: patients, vitals, prescriptions, case-reports, sick-intimations")
	AddCmd.Flags().StringVarP(&filePath, "file", "f", "", "JSON-файл с массивом записей, - для stdin")
	_ = AddCmd.MarkFlagRequired("entity")

	ListCmd.Flags().StringVarP(&entity, "entity", "e", "", "показать только этот вид")
	ListCmd.Flags().IntVarP(&limit, "limit", "n", 50, "сколько записей показать")
}
