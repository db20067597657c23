// README: Routing-API-backed distance provider (Google Maps Directions).
package geo

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"fieldops/internal/types"
)

const metersPerMile = 1609.344

// RoutesProvider implements Provider using the Google Maps Directions
// API, returning driving distance rather than straight-line distance.
type RoutesProvider struct {
	client *maps.Client
}

// NewRoutesProvider creates a RoutesProvider with the given API key.
func NewRoutesProvider(apiKey string) (*RoutesProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RoutesProvider{client: client}, nil
}

func (p *RoutesProvider) Distance(ctx context.Context, a, b types.Point) (float64, error) {
	r := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", a.Lat, a.Lng),
		Destination: fmt.Sprintf("%f,%f", b.Lat, b.Lng),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := p.client.Directions(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, fmt.Errorf("no route found")
	}

	meters := 0
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
	}
	return float64(meters) / metersPerMile, nil
}
