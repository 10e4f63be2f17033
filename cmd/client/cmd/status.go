package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hmis/internal/app/client"
	"hmis/internal/domain/sync"
)

var historyLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Состояние сервера и локальной очереди",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "=== Сервер ===")
		st, err := app.ServerStatus(ctx)
		if err != nil {
			color.New(color.FgRed).Fprintf(out, "✗ Сервер недоступен: %v\n", err)
		} else {
			fmt.Fprintf(out, "  %-18s %d\n", sync.EntityPatients, st.Counts.Patients)
			fmt.Fprintf(out, "  %-18s %d\n", sync.EntityVitals, st.Counts.Vitals)
			fmt.Fprintf(out, "  %-18s %d\n", sync.EntityPrescriptions, st.Counts.Prescriptions)
			fmt.Fprintf(out, "  %-18s %d\n", sync.EntityCaseReports, st.Counts.CaseReports)
			fmt.Fprintf(out, "  %-18s %d\n", sync.EntitySickIntimations, st.Counts.SickIntimations)
			fmt.Fprintf(out, "  Обновлено: %s\n", st.LastUpdated)
		}

		pending, err := app.Pending(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "\n=== Очередь ===")
		for _, e := range sync.Entities {
			fmt.Fprintf(out, "  %-18s %d\n", e, pending[e])
		}

		history, err := app.History(ctx, historyLimit)
		if err != nil {
			return err
		}
		if len(history) == 0 {
			return nil
		}
		fmt.Fprintln(out, "\n=== Последние пакеты ===")
		for _, h := range history {
			if h.Error != "" {
				color.New(color.FgRed).Fprintf(out, "  %s %-18s отправлено %d: %s\n", h.At, h.Entity, h.Sent, h.Error)
				continue
			}
			fmt.Fprintf(out, "  %s %-18s отправлено %d, принято %d, пропущено %d\n",
				h.At, h.Entity, h.Sent, h.Synced, h.Skipped)
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().IntVarP(&historyLimit, "history", "n", 5, "сколько последних пакетов показать")
}
