// README: Pure geographic distance helpers and the provider abstraction.
package geo

import (
	"context"
	"math"

	"fieldops/internal/types"
)

const earthRadiusMiles = 3958.8

// DistanceMiles returns the great-circle (haversine) distance in miles
// between two points. Symmetric, and zero iff the coordinates are equal.
func DistanceMiles(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Provider computes the distance in miles between two points. The
// default implementation is in-process haversine; a routing-API-backed
// implementation can be swapped in at the boundary.
type Provider interface {
	Distance(ctx context.Context, a, b types.Point) (float64, error)
}

// HaversineProvider is the in-process Provider. It never fails.
type HaversineProvider struct{}

func (HaversineProvider) Distance(_ context.Context, a, b types.Point) (float64, error) {
	return DistanceMiles(a, b), nil
}

// SortByDistance performs an insertion sort (fine for small N) on any slice
// where each element exposes a distance via the accessor function.
func SortByDistance[T any](items []T, dist func(T) float64) {
	for i := 1; i < len(items); i++ {
		key := items[i]
		j := i - 1
		for j >= 0 && dist(items[j]) > dist(key) {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = key
	}
}
