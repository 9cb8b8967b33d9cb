package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"spendlog/internal/backend"
	"spendlog/internal/core"
	applog "spendlog/internal/log"
	"spendlog/internal/services"
	"spendlog/internal/storage"
	"spendlog/internal/store"
)

const rejectedMessage = "Expense not saved: amount must be a positive number and category cannot be empty."

func windowUsage() string {
	return fmt.Sprintf("time window %v; anything else means all", core.Windows())
}

func newAddCommand(a *app) *cobra.Command {
	var draft core.Draft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense dated today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withLedger(cmd, func(ledger *services.Ledger, _ *backend.BackendResult) error {
				added, err := ledger.Add(cmd.Context(), draft)
				if err != nil {
					return err
				}
				if !added {
					fmt.Fprintln(cmd.ErrOrStderr(), rejectedMessage)
					return nil
				}

				records := ledger.Records()
				saved := newest(records)
				fmt.Fprintf(cmd.OutOrStdout(), "Added #%d: %s %s on %s\n",
					saved.ID,
					a.renderer(cmd).Money(saved.Amount),
					saved.Category,
					saved.Date)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&draft.Amount, "amount", "a", "", "amount spent, e.g. 12.50 or 12,50")
	cmd.Flags().StringVarP(&draft.Category, "category", "c", "", "category label")
	cmd.Flags().StringVarP(&draft.Note, "note", "n", "", "optional note")
	return cmd
}

// newest returns the record with the highest id.
func newest(records []core.Expense) core.Expense {
	var out core.Expense
	for _, e := range records {
		if e.ID > out.ID {
			out = e
		}
	}
	return out
}

func newListCommand(a *app) *cobra.Command {
	var window string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withLedger(cmd, func(ledger *services.Ledger, _ *backend.BackendResult) error {
				ledger.SetWindow(core.ParseWindow(window))
				view := ledger.Snapshot()
				fmt.Fprintln(cmd.OutOrStdout(), a.renderer(cmd).List(view.Expenses))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", core.WindowAll.String(), windowUsage())
	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an expense by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid expense id %q", args[0])
			}

			return a.withLedger(cmd, func(ledger *services.Ledger, _ *backend.BackendResult) error {
				if err := ledger.Delete(cmd.Context(), id); err != nil {
					if errors.Is(err, store.ErrNotFound) {
						return fmt.Errorf("no expense with id %d", id)
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted #%d\n", id)
				return nil
			})
		},
	}
}

func newSummaryCommand(a *app) *cobra.Command {
	var window string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show totals and the per-category breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withLedger(cmd, func(ledger *services.Ledger, _ *backend.BackendResult) error {
				ledger.SetWindow(core.ParseWindow(window))
				view := ledger.Snapshot()
				r := a.renderer(cmd)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", r.Totals(view.Summary), r.Breakdown(view.Summary))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", core.WindowAll.String(), windowUsage())
	return cmd
}

func newShowCommand(a *app) *cobra.Command {
	var window string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the full screen: tabs, totals, breakdown and list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withLedger(cmd, func(ledger *services.Ledger, res *backend.BackendResult) error {
				ledger.SetWindow(core.ParseWindow(window))
				footer := "Data stored in " + res.Location
				fmt.Fprintln(cmd.OutOrStdout(), a.renderer(cmd).Screen(ledger.Snapshot(), footer))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", core.WindowAll.String(), windowUsage())
	return cmd
}

func newMigrateCommand(a *app) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply (or roll back) the SQLite schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Backend != backend.SQLiteBackend.String() {
				return fmt.Errorf("migrate requires the sqlite backend, got %q", a.cfg.Backend)
			}
			path := a.cfg.SQLiteDBPath

			run := storage.RunMigrations
			if down {
				run = storage.MigrateDown
			}
			if err := run(path); err != nil {
				return err
			}
			a.logger.InfoContext(cmd.Context(), "Migrations applied",
				applog.FieldOperation, applog.OpMigrate,
				applog.FieldDBPath, path,
				"down", down)

			version, dirty, err := storage.SchemaVersion(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema version %d (dirty=%t) at %s\n", version, dirty, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "roll back every migration")
	return cmd
}

func newWindowsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "windows",
		Short: "Print the recognized time windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, w := range core.Windows() {
				fmt.Fprintln(cmd.OutOrStdout(), w)
			}
			return nil
		},
	}
}
