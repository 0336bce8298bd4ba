package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dcbc/crewboard/cmd/cli/commands"
	"github.com/dcbc/crewboard/internal/config"
	"github.com/dcbc/crewboard/pkg/clients/sheetsclient"
	"github.com/dcbc/crewboard/pkg/db"
	"github.com/dcbc/crewboard/pkg/postgres"
	"github.com/dcbc/crewboard/pkg/sqlite"
	"github.com/dcbc/crewboard/pkg/utils/logging"
)

var env string

func main() {
	app := &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "crewboard",
		Short: "Crewboard CLI - Manage boat crews, outings and availability",
		Long:  `A CLI tool for managing permanent crews, scheduling outings, recording substitutions and tracking member availability.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				app.Database.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}
	rootCmd.SilenceUsage = true

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.ViewOutingsCmd(app))
	rootCmd.AddCommand(commands.ViewOutingCmd(app))
	rootCmd.AddCommand(commands.ScheduleOutingCmd(app))
	rootCmd.AddCommand(commands.AddSubstituteCmd(app))
	rootCmd.AddCommand(commands.RemoveSubstituteCmd(app))
	rootCmd.AddCommand(commands.AddCoverCmd(app))
	rootCmd.AddCommand(commands.DeleteOutingCmd(app))
	rootCmd.AddCommand(commands.SetBoatCmd(app))
	rootCmd.AddCommand(commands.SetBoatActiveCmd(app))
	rootCmd.AddCommand(commands.ListBoatsCmd(app))
	rootCmd.AddCommand(commands.RepairMembershipsCmd(app))
	rootCmd.AddCommand(commands.DefineEventCmd(app))
	rootCmd.AddCommand(commands.DeleteEventCmd(app))
	rootCmd.AddCommand(commands.RecordAvailabilityCmd(app))
	rootCmd.AddCommand(commands.ViewCalendarCmd(app))
	rootCmd.AddCommand(commands.GroupAvailabilityCmd(app))
	rootCmd.AddCommand(commands.SetMemberTagsCmd(app))
	rootCmd.AddCommand(commands.ListTagsCmd(app))
	rootCmd.AddCommand(commands.PublishOutingsCmd(app))
	rootCmd.AddCommand(commands.ExportOutingsCmd(app))
	rootCmd.AddCommand(commands.ImportMembersCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and database. The sheets client is created on first use.
func initApp(app *commands.AppContext) error {
	var err error
	app.Ctx = context.Background()
	app.Env = env

	// Initialize logger
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("driver", app.Cfg.Database.Driver),
		zap.String("timezone", app.Cfg.Timezone))

	app.Database, err = openDatabase(app.Ctx, app.Cfg.Database, app.Logger)
	if err != nil {
		return err
	}

	var client *sheetsclient.Client
	app.SheetsClient = func() (*sheetsclient.Client, error) {
		if client != nil {
			return client, nil
		}

		app.Logger.Info("Loading OAuth client configuration")
		oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
		if err != nil {
			return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
		}

		app.Logger.Info("Initializing sheets client")
		client, err = sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets client: %w", err)
		}
		app.Logger.Debug("Sheets client initialized successfully")
		return client, nil
	}

	return nil
}

// openDatabase connects to the configured backend and brings its schema up to date
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (db.Database, error) {
	logger.Info("Connecting to database", zap.String("driver", cfg.Driver))

	switch cfg.Driver {
	case "postgres":
		database, err := postgres.NewDB(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.RunMigrations(ctx); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("Database initialized successfully")
		return database, nil
	case "sqlite":
		database, err := sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		logger.Info("Database initialized successfully", zap.String("path", cfg.URL))
		return database, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
