package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"boomiis-api/config"
	"boomiis-api/logger"
	"boomiis-api/server"
)

func init() { //nolint: gochecknoinits
	serveCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode (allows the default session secret)")

	rootCmd.AddCommand(serveCmd)
}

var (
	devMode bool

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(devMode)
			if err != nil {
				return err
			}

			if err := logger.Init(cfg.Log); err != nil {
				return err
			}

			srv, err := server.New(cfg)
			if err != nil {
				log.Error().Err(err).Msg("failed to start")
				return err
			}

			return srv.Run()
		},
	}
)
