// Package cli defines the zenith command tree. The bare command opens
// the terminal dashboard; subcommands cover the session lifecycle and
// scripted reads.
package cli

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/matt-steen/zenith/pkg/api"
	"github.com/matt-steen/zenith/pkg/cache"
	"github.com/matt-steen/zenith/pkg/config"
	"github.com/matt-steen/zenith/pkg/controller"
	"github.com/matt-steen/zenith/pkg/dashboard"
	"github.com/matt-steen/zenith/pkg/session"
)

const logFilePerms = 0o666

var (
	cfgPath string

	cfg    *config.Config
	store  *session.Store
	client *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "zenith",
	Short: "Terminal dashboard for the student-zenith backend",
	Long: "zenith is a terminal client for the student-zenith API: notes, todos,\n" +
		"class schedule, study planner, budget tracking, and exam Q&A, all in\n" +
		"one keyboard-driven dashboard.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDashboard(cmd)
	},
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "config file")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(summaryCmd)
}

// setup loads the config, points the logger at the log file, and
// restores any persisted session onto the API client.
func setup(_ *cobra.Command, _ []string) error {
	// a .env file is optional; env vars override the config file
	_ = godotenv.Load()

	var err error

	cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}

	if err := initLogger(); err != nil {
		return err
	}

	client = api.NewClient(cfg.API.BaseURL)

	if timeout, err := cfg.RequestTimeout(); err == nil {
		client.SetTimeout(timeout)
	}

	store = session.NewStore(cfg.SessionFile)

	sess, err := store.Load()
	if err != nil {
		return err
	}

	if sess != nil {
		if sess.Expired(time.Now()) {
			log.Info().Msg("persisted session has expired; log in again")

			return nil
		}

		client.SetSession(sess.Token, sess.User.ID)
	}

	return nil
}

// initLogger sends zerolog to the configured log file so log lines
// don't tear up the TUI.
func initLogger() error {
	logFile, err := os.OpenFile(cfg.Logging.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(logFilePerms))
	if err != nil {
		return fmt.Errorf("error opening log file %s: %w", cfg.Logging.File, err)
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05",
	}).Level(level)

	return nil
}

func runDashboard(cmd *cobra.Command) error {
	ctx := cmd.Context()

	log.Info().Msg("starting application...")

	if client.UserID() == "" {
		return fmt.Errorf("not logged in; run 'zenith login' first")
	}

	snapshots, err := cache.New(ctx, cfg.CacheFile)
	if err != nil {
		return err
	}
	defer snapshots.Close()

	dash := dashboard.New(ctx, client, snapshots, cfg.Budget.Monthly)

	ctrl, err := controller.NewController(ctx, dash)
	if err != nil {
		return err
	}

	ctrl.Go()

	return nil
}
