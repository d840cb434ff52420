package types

// StationID identifies one physical station of the upstream network
type StationID int

// Attribute is one named, display-formatted value of a feature
type Attribute struct {
	Name  string
	Value string
}

// Feature is the canonical record built from one station reading
type Feature struct {
	ID         StationID
	Geometry   Coords
	Attributes []Attribute
}

// Get returns the value of the named attribute
func (f Feature) Get(name string) (string, bool) {
	for _, a := range f.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// FeatureCollection holds features in ascending station id order
type FeatureCollection struct {
	Features []Feature
}

// Len returns the number of features in the collection
func (fc FeatureCollection) Len() int {
	return len(fc.Features)
}
