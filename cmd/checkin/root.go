package main

import (
	"fmt"

	"github.com/shenikar/geo_checkin/internal/config"
	"github.com/shenikar/geo_checkin/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config
	log *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Geofenced visit check-in service",
	Long: `Check-in service for geofenced sites.

Examples:
  checkin serve
  checkin migrate up
  checkin sites --lat 5.5353 --lng -73.3678`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log = logger.New(cfg.LogLevel)
		return nil
	},
}
