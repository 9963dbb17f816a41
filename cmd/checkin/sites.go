package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/shenikar/geo_checkin/internal/geo"
	"github.com/shenikar/geo_checkin/internal/models"
	"github.com/shenikar/geo_checkin/internal/proximity"
	"github.com/shenikar/geo_checkin/internal/registry"
	"github.com/spf13/cobra"
)

var (
	sitesLat     float64
	sitesLng     float64
	sitesNoSheet bool
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List geofence sites, ranked by distance when a position is given",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sites := loadSites(ctx)

		hasLat, hasLng := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lng")
		if hasLat != hasLng {
			return fmt.Errorf("--lat and --lng must be given together")
		}
		if !hasLat {
			for _, site := range sites {
				fmt.Println(formatSite(site))
			}
			return nil
		}

		position := geo.Point{Latitude: sitesLat, Longitude: sitesLng}
		if err := position.Validate(); err != nil {
			return err
		}
		result := proximity.Evaluate(position, sites)
		for i, ranked := range result.Ranked {
			fmt.Println(formatRanked(ranked, i == 0))
		}
		return nil
	},
}

func init() {
	sitesCmd.Flags().Float64Var(&sitesLat, "lat", 0, "user latitude")
	sitesCmd.Flags().Float64Var(&sitesLng, "lng", 0, "user longitude")
	sitesCmd.Flags().BoolVar(&sitesNoSheet, "no-sheet", false, "skip the Google Sheets registry")
	rootCmd.AddCommand(sitesCmd)
}

func loadSites(ctx context.Context) []models.Site {
	var source registry.Source
	if !sitesNoSheet {
		if client := newSheetsClient(ctx); client != nil {
			source = client
		}
	}
	reg := registry.New(registry.DefaultSites(), source, registry.Options{
		Range:         cfg.SheetSitesRange,
		DefaultRadius: cfg.DefaultRadiusMeters,
	}, log)
	if err := reg.Refresh(ctx); err != nil {
		color.Yellow("Spreadsheet unavailable, showing built-in sites: %v", err)
	}
	if at := reg.RefreshedAt(); !at.IsZero() {
		color.New(color.Faint).Printf("Spreadsheet read at %s\n", at.Format(time.RFC3339))
	}
	return reg.ListSites()
}

func formatSite(site models.Site) string {
	return fmt.Sprintf("%s  %s %s",
		color.New(color.Faint).Sprintf("%-12s", site.ID),
		site.Name,
		color.New(color.Faint).Sprintf("(%.5f, %.5f, r=%.0fm)", site.Center.Latitude, site.Center.Longitude, site.RadiusMeters))
}

func formatRanked(ranked models.RankedSite, closest bool) string {
	status := color.New(color.Faint).Sprint("outside")
	if proximity.IsInside(ranked) {
		status = color.GreenString("inside")
	}
	marker := " "
	if closest {
		marker = color.CyanString("*")
	}
	return fmt.Sprintf("%s %s %10s  %s", marker, formatSite(ranked.Site), formatDistance(ranked.DistanceMeters), status)
}

func formatDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.1f km", meters/1000)
	}
	return fmt.Sprintf("%.0f m", meters)
}
