package commands

import (
	"github.com/spf13/cobra"

	"github.com/taleemtrack/taleemtrack-cli/internal/devserver"
	"github.com/taleemtrack/taleemtrack-cli/internal/models"
	"github.com/taleemtrack/taleemtrack-cli/pkg/config"
	"github.com/taleemtrack/taleemtrack-cli/pkg/logger"
)

var serveSeed bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an in-memory TaleemTrack dev server",
	Long: `Run an in-memory implementation of the TaleemTrack backend for
local development. Seeded accounts: admin, principal, teacher, accounts
(password is the username followed by 123). State is lost on exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logr, err := logger.New(cfg)
		if err != nil {
			return err
		}
		defer logr.Sync() //nolint:errcheck

		srv := devserver.New(cfg.DevServer, logr)
		if serveSeed {
			if err := srv.Seed(
				models.SessionRequest{
					Name:      "2023-2024",
					StartDate: models.NewDate(2023, 4, 1),
					EndDate:   models.NewDate(2024, 3, 31),
				},
				models.SessionRequest{
					Name:      "2024-2025",
					StartDate: models.NewDate(2024, 4, 1),
					EndDate:   models.NewDate(2025, 3, 31),
					IsCurrent: true,
				},
			); err != nil {
				return err
			}
		}

		return srv.Run(cfg.DevServer.Port)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "seed a couple of demo sessions")
}
