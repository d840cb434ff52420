package stations

import (
	"log/slog"
	"time"

	"github.com/geonet-geomatica/Repositorio/internal/providers/agrometeo"
	"github.com/geonet-geomatica/Repositorio/internal/types"
)

// TimezoneResolver finds the local zone of a station, used by GroupUTC
type TimezoneResolver interface {
	Location(coords types.Coords) (*time.Location, error)
}

// NormalizerOptions enables the optional attribute groups. GroupCore is
// always on.
type NormalizerOptions struct {
	Delay        bool
	Availability bool
	Chart        bool
	UTC          bool
	ChartURL     string
	Timezones    TimezoneResolver
}

// Normalizer maps raw upstream records to canonical features
type Normalizer struct {
	opts   NormalizerOptions
	logger *slog.Logger
}

func NewNormalizer(opts NormalizerOptions, logger *slog.Logger) *Normalizer {
	if opts.Timezones == nil {
		opts.UTC = false
	}
	return &Normalizer{
		opts:   opts,
		logger: logger.With("component", "station-normalizer"),
	}
}

func (n *Normalizer) enabled(g Group) bool {
	switch g {
	case GroupCore:
		return true
	case GroupDelay:
		return n.opts.Delay
	case GroupAvailability:
		return n.opts.Availability
	case GroupChart:
		return n.opts.Chart
	case GroupUTC:
		return n.opts.UTC
	}
	return false
}

// AttributeNames lists, in emission order, the attributes every feature
// produced by this normalizer carries.
func (n *Normalizer) AttributeNames() []string {
	names := make([]string, 0, len(fieldMappings)+2)
	for _, m := range fieldMappings {
		if n.enabled(m.group) {
			names = append(names, m.attribute)
		}
	}
	if n.enabled(GroupChart) {
		names = append(names, AttrChartURL)
	}
	if n.enabled(GroupUTC) {
		names = append(names, AttrTimestampUTC)
	}
	return names
}

// Normalize builds a feature from one station record. A missing or
// non-numeric longitude/latitude returns a *NormalizationError; any other
// missing value becomes a placeholder.
func (n *Normalizer) Normalize(id types.StationID, raw agrometeo.StationRecord) (types.Feature, error) {
	lng, err := parseCoordinate(raw, agrometeo.FieldLongitude)
	if err != nil {
		return types.Feature{}, &NormalizationError{StationID: id, Field: agrometeo.FieldLongitude, Err: err}
	}
	lat, err := parseCoordinate(raw, agrometeo.FieldLatitude)
	if err != nil {
		return types.Feature{}, &NormalizationError{StationID: id, Field: agrometeo.FieldLatitude, Err: err}
	}

	feature := types.Feature{
		ID:         id,
		Geometry:   types.NewCoords(lng, lat),
		Attributes: make([]types.Attribute, 0, len(fieldMappings)+2),
	}

	for _, m := range fieldMappings {
		if !n.enabled(m.group) {
			continue
		}

		value := m.missing
		if v, ok := raw[m.upstream]; ok && v != nil {
			if s, ok := m.format(v); ok {
				value = s
			} else {
				n.logger.Debug("unusable field value", "station_id", id, "field", m.upstream, "value", v)
			}
		}
		feature.Attributes = append(feature.Attributes, types.Attribute{Name: m.attribute, Value: value})
	}

	if n.enabled(GroupChart) {
		feature.Attributes = append(feature.Attributes, types.Attribute{
			Name:  AttrChartURL,
			Value: chartURL(n.opts.ChartURL, id),
		})
	}

	if n.enabled(GroupUTC) {
		feature.Attributes = append(feature.Attributes, types.Attribute{
			Name:  AttrTimestampUTC,
			Value: n.utcTimestamp(id, feature),
		})
	}

	return feature, nil
}

func (n *Normalizer) utcTimestamp(id types.StationID, feature types.Feature) string {
	local, ok := feature.Get(AttrTimestamp)
	if !ok || local == NotAvailable {
		return NotAvailable
	}

	loc, err := n.opts.Timezones.Location(feature.Geometry)
	if err != nil {
		n.logger.Debug("no timezone for station", "station_id", id, "error", err)
		return NotAvailable
	}

	utc, ok := toUTC(local, loc)
	if !ok {
		n.logger.Debug("unparseable station timestamp", "station_id", id, "value", local)
		return NotAvailable
	}
	return utc
}
