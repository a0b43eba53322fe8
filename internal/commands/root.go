package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taleemtrack/taleemtrack-cli/internal/api"
	"github.com/taleemtrack/taleemtrack-cli/internal/auth"
	"github.com/taleemtrack/taleemtrack-cli/internal/guard"
	"github.com/taleemtrack/taleemtrack-cli/internal/store"
	"github.com/taleemtrack/taleemtrack-cli/pkg/config"
	"github.com/taleemtrack/taleemtrack-cli/pkg/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "taleemtrack",
	Short: "Terminal client for the TaleemTrack school management system",
	Long: `taleemtrack is a terminal front-end for the TaleemTrack school
management API. Manage academic sessions, sign in and out, and browse the
collection interactively, all without leaving the terminal.`,
	SilenceUsage: true,
}

// app bundles the wired services every command works against.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  *api.Client
	authSvc *auth.Service
	store   *store.SessionStore
	guard   *guard.Guard
}

// initApp loads configuration and wires the client, auth service and store.
func initApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	storage := auth.NewFileStorage(cfg.DefaultCredentialsFile(configDir))

	// The auth service both consumes the client (login) and feeds it the
	// bearer token, so the token source indirects through the variable.
	var authSvc *auth.Service
	client := api.NewClient(cfg.API.BaseURL,
		api.WithHTTPClient(newHTTPClient(cfg)),
		api.WithTokenSource(api.TokenFunc(func() string {
			if authSvc == nil {
				return ""
			}
			return authSvc.Token()
		})),
		api.WithLogger(logr),
	)
	authSvc = auth.NewService(client, storage, logr)

	return &app{
		cfg:     cfg,
		logger:  logr,
		client:  client,
		authSvc: authSvc,
		store:   store.NewSessionStore(client, logr),
		guard:   guard.New(authSvc),
	}, nil
}

// requireAuth enforces the route guard for protected commands, pointing the
// user at `taleemtrack login` instead of redirecting a browser.
func (a *app) requireAuth(target string) error {
	if decision := a.guard.Check(target); !decision.Allowed {
		return fmt.Errorf("not signed in or session expired: run `taleemtrack login` first")
	}
	return nil
}

// SetVersion sets the build information shown by the version command.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taleemtrack %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
