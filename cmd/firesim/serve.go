package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulation API over HTTP",
	Long:  "Exposes the engine to the dashboard frontend: POST /api/simulate, POST /api/compare, GET /api/health",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			settings.Server.ListenAddr = serveAddr
		}

		logger := logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
			logger.SetLevel(level)
		}

		return server.New(settings, logger).ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8080", "listen address")
}
