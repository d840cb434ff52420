package types

// Coords is a WGS84 position. Longitude comes first to match GeoJSON and GML
// coordinate order.
type Coords struct {
	Longitude float64
	Latitude  float64
}

func NewCoords(longitude, latitude float64) Coords {
	return Coords{
		Longitude: longitude,
		Latitude:  latitude,
	}
}
