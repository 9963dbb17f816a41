package main

import (
	"os"
)

// @title Geo Check-in API
// @version 1.0
// @description Geofenced visit check-in: site registry, proximity ranking, visit confirmation and photo upload.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
