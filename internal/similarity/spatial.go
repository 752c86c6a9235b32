// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package similarity

import (
	"math"

	"github.com/tomtom215/affinitas/internal/models"
)

// BuildSpatialMatrix computes exp(-km/sigma) over the haversine distance
// for every pair of records carrying both coordinates, iterating i <= j
// and mirroring. A record missing either coordinate leaves its whole row
// and column at the zero default; two records at the same point score
// exactly 1.
func BuildSpatialMatrix(records []models.Record, sigmaKm float64) *Matrix {
	n := len(records)
	m := NewMatrix(n)

	for i := 0; i < n; i++ {
		if !records[i].HasCoordinates() {
			continue
		}
		for j := i; j < n; j++ {
			if !records[j].HasCoordinates() {
				continue
			}
			km := haversineKm(
				*records[i].PlaceLat, *records[i].PlaceLon,
				*records[j].PlaceLat, *records[j].PlaceLon,
			)
			m.SetSym(i, j, math.Exp(-km/sigmaKm))
		}
	}
	return m
}

// haversineKm calculates the great-circle distance in kilometres between
// two points using the haversine formula on a spherical Earth.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
