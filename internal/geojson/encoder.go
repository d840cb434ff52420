package geojson

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/geonet-geomatica/Repositorio/internal/types"
)

// ContentType is the media type of an encoded collection
const ContentType = "application/geo+json"

// Encode renders fc as a GeoJSON FeatureCollection. Each feature is a Point
// in [lng, lat] order with the station id as its id and the normalized
// attributes as properties.
func Encode(fc *types.FeatureCollection) ([]byte, error) {
	out := ToGeoJSON(fc)

	data, err := out.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode feature collection: %w", err)
	}
	return data, nil
}

// ToGeoJSON converts fc to its orb representation
func ToGeoJSON(fc *types.FeatureCollection) *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	if fc == nil {
		return out
	}

	for _, f := range fc.Features {
		feature := geojson.NewFeature(orb.Point{f.Geometry.Longitude, f.Geometry.Latitude})
		feature.ID = int(f.ID)
		for _, a := range f.Attributes {
			feature.Properties[a.Name] = a.Value
		}
		out.Append(feature)
	}

	return out
}
