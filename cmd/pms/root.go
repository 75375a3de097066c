package main

import (
	"context"
	"fmt"
	"io"

	"pms/internal/config"
	"pms/internal/logging"
	"pms/internal/repository/sqlite"
	"pms/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds what a single invocation opens and must release
type app struct {
	configPath string
	dbPath     string
	verbose    bool

	cfg    *config.Config
	log    *zap.Logger
	store  *sqlite.Store
	events chan service.Event
	dir    *service.Directory
}

// run executes one command line and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.close()
	if err != nil {
		fmt.Fprintln(stderr, "error:", describe(err))
		return exitCode(err)
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pms",
		Short: "Police registry of cities, neighborhoods, streets and stations",
		Long: `pms keeps a registry of cities with their neighborhoods and streets,
and of police stations that may belong to a city.

Deleting a city deletes its neighborhoods and their streets. Its police
stations are kept and lose their city.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.open,
		PersistentPostRun: a.report,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: search $PMS_CONFIG, ./pms.yaml, XDG, /etc)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (overrides config)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.initCmd(),
		a.cityCmd(),
		a.neighborhoodCmd(),
		a.streetCmd(),
		a.stationCmd(),
		a.importCmd(),
		a.exportCmd(),
	)
	return root
}

// open loads configuration, builds the logger and opens the store
func (a *app) open(cmd *cobra.Command, _ []string) error {
	var err error
	if a.configPath != "" {
		a.cfg, _, err = config.LoadFromPath(a.configPath)
	} else {
		a.cfg, _, err = config.Load()
	}
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		a.cfg.Database.Path = a.dbPath
	}

	a.log, err = logging.New(a.cfg.Logging, a.verbose)
	if err != nil {
		return err
	}

	a.store, err = sqlite.Open(cmd.Context(), sqlite.Options{
		Path:        a.cfg.Database.Path,
		BusyTimeout: a.cfg.Database.BusyTimeout.Duration(),
		Logger:      a.log,
	})
	if err != nil {
		return err
	}

	bus := service.NewEventBus()
	a.events = make(chan service.Event, 1024)
	bus.Subscribe(a.events)
	a.dir = service.NewDirectory(a.store, bus, a.log)
	return nil
}

// report prints a line for every change the command committed
func (a *app) report(cmd *cobra.Command, _ []string) {
	if a.events == nil {
		return
	}
	for {
		select {
		case ev := <-a.events:
			fmt.Fprintln(cmd.OutOrStdout(), describeEvent(ev))
		default:
			return
		}
	}
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil && a.log != nil {
			a.log.Warn("failed to close store", zap.Error(err))
		}
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func describeEvent(ev service.Event) string {
	if ev.Type == service.EventImported && ev.Counts != nil {
		c := ev.Counts
		return fmt.Sprintf("imported %d cities, %d neighborhoods, %d streets, %d police stations",
			c.Cities, c.Neighborhoods, c.Streets, c.PoliceStations)
	}
	return fmt.Sprintf("%s %s %d", ev.Type, ev.Entity, ev.ID)
}

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database and its tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// open already created the schema
			fmt.Fprintf(cmd.OutOrStdout(), "database ready at %s\n", a.store.Path())
			return nil
		},
	}
}
