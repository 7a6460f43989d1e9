package geo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"github.com/carecompass/carecompass-api/consts"
	"github.com/carecompass/carecompass-api/schema"
)

const defaultGeocodeTimeout = 5 * time.Second

var (
	ErrLocationNotFound = fmt.Errorf("no coordinate found for location")
)

// LocationResolver - interface for turning a free-form location string into
// a coordinate
type LocationResolver interface {
	Resolve(ctx context.Context, location string) (schema.Location, error)
}

type MultipleResolverErrors struct {
	errors []error
}

func (e *MultipleResolverErrors) Error() string {
	errorStrings := make([]string, len(e.errors))
	for i, err := range e.errors {
		errorStrings[i] = fmt.Sprintf("#%d: %s", i, err.Error())
	}
	return strings.Join(errorStrings, "\n")
}

func NewMultipleResolverErrors(errors []error) *MultipleResolverErrors {
	return &MultipleResolverErrors{
		errors: errors,
	}
}

// CityTableResolver resolves against the built-in city lookup table
type CityTableResolver struct{}

func NewCityTableResolver() *CityTableResolver {
	return &CityTableResolver{}
}

func (r *CityTableResolver) Resolve(_ context.Context, location string) (schema.Location, error) {
	normalized := strings.ToLower(strings.TrimSpace(location))
	if loc, ok := consts.CityCoordinates[normalized]; ok {
		return loc, nil
	}
	return schema.Location{}, ErrLocationNotFound
}

// GeocodingResolver resolves through the Google geocoding API
type GeocodingResolver struct {
	client *maps.Client
}

func NewGeocodingResolver(client *maps.Client) *GeocodingResolver {
	return &GeocodingResolver{
		client: client,
	}
}

func (g *GeocodingResolver) Resolve(ctx context.Context, location string) (schema.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGeocodeTimeout)
	defer cancel()

	geos, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  location,
		Language: "en",
	})
	if nil != err {
		return schema.Location{}, err
	}

	if len(geos) == 0 {
		return schema.Location{}, ErrLocationNotFound
	}

	return schema.Location{
		Latitude:  geos[0].Geometry.Location.Lat,
		Longitude: geos[0].Geometry.Location.Lng,
	}, nil
}

// MultipleResolver tries each resolver in order and returns the first
// successful coordinate
type MultipleResolver struct {
	resolvers []LocationResolver
}

func NewMultipleResolver(resolvers ...LocationResolver) *MultipleResolver {
	return &MultipleResolver{
		resolvers: resolvers,
	}
}

func (r *MultipleResolver) Resolve(ctx context.Context, location string) (schema.Location, error) {
	var errors []error
	for _, resolver := range r.resolvers {
		result, err := resolver.Resolve(ctx, location)
		if err != nil {
			errors = append(errors, err)
		} else {
			return result, nil
		}
	}

	return schema.Location{}, NewMultipleResolverErrors(errors)
}
