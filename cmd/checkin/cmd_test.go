package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/shenikar/geo_checkin/internal/config"
	"github.com/shenikar/geo_checkin/internal/registry"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestMigrationURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@localhost:5432/checkin":   "pgx5://u:p@localhost:5432/checkin",
		"postgresql://u:p@localhost:5432/checkin": "pgx5://u:p@localhost:5432/checkin",
		"pgx5://u:p@localhost:5432/checkin":       "pgx5://u:p@localhost:5432/checkin",
	}
	for in, want := range tests {
		assert.Equal(t, want, migrationURL(in), in)
	}
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "87 m", formatDistance(87.2))
	assert.Equal(t, "12.3 km", formatDistance(12345))
}

func TestLoadSites_BuiltInOnly(t *testing.T) {
	cfg = &config.Config{SheetSitesRange: "parroquia!A:D", DefaultRadiusMeters: 100}
	log = logrus.New()
	log.SetOutput(&bytes.Buffer{})
	sitesNoSheet = true
	t.Cleanup(func() { cfg, log, sitesNoSheet = nil, nil, false })

	assert.Equal(t, registry.DefaultSites(), loadSites(context.Background()))
}
