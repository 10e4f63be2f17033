package sync

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hmis/internal/app/client"
	hsync "hmis/internal/domain/sync"
)

var entities []string

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Отправить очередь на сервер",
	Long: `Отправляет записи из локальной очереди пакетами на /api/sync/<вид>.
Виды отправляются в порядке зависимостей: сначала пациенты.

Пакет удаляется из очереди только после ответа сервера success; при ошибке
сети или сервера пакет остается в очереди и будет отправлен повторно.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		requested := make([]hsync.Entity, 0, len(entities))
		for _, e := range entities {
			parsed, err := hsync.ParseEntity(e)
			if err != nil {
				return fmt.Errorf("неизвестный вид записей %q", e)
			}
			requested = append(requested, parsed)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "=== Синхронизация ===")
		start := time.Now()

		results, syncErr := app.Sync(cmd.Context(), requested...)

		for _, r := range results {
			fmt.Fprintf(out, "  %-18s отправлено %d, принято %d, пропущено %d\n",
				r.Entity, r.Sent, r.Synced, r.Skipped)
		}

		if syncErr != nil {
			color.New(color.FgRed).Fprintf(out, "✗ Синхронизация прервана: %v\n", syncErr)
			fmt.Fprintln(out, "  Неотправленные записи остались в очереди.")
			return syncErr
		}

		if len(results) == 0 {
			fmt.Fprintln(out, "Очередь пуста, отправлять нечего.")
			return nil
		}

		color.New(color.FgGreen).Fprintf(out, "✓ Синхронизация завершена за %v\n", time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	SyncCmd.Flags().StringSliceVarP(&entities, "entity", "e", nil, "отправить только эти виды (можно несколько)")
}
