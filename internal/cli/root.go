package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spendlog/internal/backend"
	"spendlog/internal/config"
	applog "spendlog/internal/log"
	"spendlog/internal/render"
	"spendlog/internal/services"
)

// app carries the state shared by every command of one invocation.
type app struct {
	configFile  string
	dbPath      string
	backendName string
	logLevel    string

	cfg    *config.Config
	logger *applog.Logger
}

// Execute runs the command tree against the process arguments.
func Execute() {
	LoadEnvFile()

	ctx, stop := SignalContext(context.Background())
	err := NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "spendlog",
		Short: "Track expenses and see where the money goes",
		Long: `Record expenses with an amount, a category and an optional note,
then list and summarize them over all time, the current week or the current month.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./spendlog.yaml or $HOME/.config/spendlog/spendlog.yaml)")
	flags.StringVar(&a.dbPath, "db", "", "SQLite database path")
	flags.StringVar(&a.backendName, "backend", "", fmt.Sprintf("storage backend %v", backend.GetBackendTypeStrings()))
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newAddCommand(a),
		newListCommand(a),
		newDeleteCommand(a),
		newSummaryCommand(a),
		newShowCommand(a),
		newMigrateCommand(a),
		newWindowsCommand(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := LoadAndValidateConfig(
		config.WithFile(a.configFile),
		config.WithOverride("sqlite_db_path", a.dbPath),
		config.WithOverride("backend", a.backendName),
		config.WithOverride("log_level", a.logLevel),
	)
	if err != nil {
		return err
	}

	logger, err := SetupLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger.WithComponent(applog.ComponentConfig).DebugContext(cmd.Context(), "Configuration loaded",
		applog.FieldOperation, applog.OpStartup,
		applog.FieldBackend, cfg.Backend,
		"config_file", cfg.ConfigFile)

	a.cfg = cfg
	a.logger = logger
	cmd.SetContext(applog.NewContext(cmd.Context(), logger))
	return nil
}

func (a *app) renderer(cmd *cobra.Command) *render.Renderer {
	a.logger.DebugContext(cmd.Context(), "Rendering output",
		applog.FieldOperation, applog.OpRender,
		"command", cmd.Name())
	return render.New(cmd.OutOrStdout(),
		render.WithCurrencySymbol(a.cfg.CurrencySymbol),
		render.WithBarWidth(a.cfg.BarWidth),
	)
}

// withLedger opens the backend, loads every record and hands the ledger to fn.
// The backend is closed when fn returns.
func (a *app) withLedger(cmd *cobra.Command, fn func(*services.Ledger, *backend.BackendResult) error) (err error) {
	ctx := cmd.Context()

	calendar, err := a.cfg.Calendar()
	if err != nil {
		return err
	}

	res, err := InitBackend(ctx, a.logger, a.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := res.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close backend: %w", cerr))
		}
	}()

	service := services.NewExpenseService(res.Backend, calendar)
	ledger := services.NewLedger(service, a.logger)
	if err := ledger.Reload(ctx); err != nil {
		return err
	}
	return fn(ledger, res)
}
