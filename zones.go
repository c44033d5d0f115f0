package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// loadZonesFromDir loads obstacle zone polygons from every .geojson file in
// dir. Unreadable or malformed files are logged and skipped.
func loadZonesFromDir(dir string, logger *slog.Logger) ([]orb.Polygon, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return nil, fmt.Errorf("failed to list zone files: %w", err)
	}

	logger.Info("loading obstacle zones", "dir", dir, "files", len(files))

	var allZones []orb.Polygon
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			logger.Warn("failed to read zone file", "file", file, "error", err)
			continue
		}

		zones, err := parseZones(data)
		if err != nil {
			logger.Warn("failed to parse zone file", "file", file, "error", err)
			continue
		}

		allZones = append(allZones, zones...)
		logger.Debug("loaded zone file", "file", filepath.Base(file), "polygons", len(zones))
	}

	logger.Info("obstacle zones loaded", "polygons", len(allZones))
	return allZones, nil
}

// parseZones extracts polygons from a GeoJSON feature collection. Coordinates
// are grid units: x is the column, y the row.
func parseZones(data []byte) ([]orb.Polygon, error) {
	featureCollection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal feature collection: %w", err)
	}

	var zones []orb.Polygon
	for _, feature := range featureCollection.Features {
		switch geometry := feature.Geometry.(type) {
		case orb.Polygon:
			zones = append(zones, geometry)
		case orb.MultiPolygon:
			zones = append(zones, geometry...)
		}
	}
	return zones, nil
}
