package stations

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/geonet-geomatica/Repositorio/internal/providers/agrometeo"
	"github.com/geonet-geomatica/Repositorio/internal/types"
)

// Group selects which optional attributes a feature carries
type Group int

const (
	GroupCore Group = iota
	GroupDelay
	GroupAvailability
	GroupChart
	GroupUTC
)

type formatFunc func(v any) (string, bool)

// fieldMapping binds one upstream key to one canonical attribute
type fieldMapping struct {
	upstream  string
	attribute string
	group     Group
	format    formatFunc
	missing   string
}

var fieldMappings = []fieldMapping{
	{agrometeo.FieldName, AttrName, GroupCore, plain, NotAvailable},
	{agrometeo.FieldTimestamp, AttrTimestamp, GroupCore, plain, NotAvailable},
	{agrometeo.FieldAirTemperature, AttrAirTemp, GroupCore, withUnit(UnitCelsius), NotAvailable},
	{agrometeo.FieldHumidity, AttrHumidity, GroupCore, withUnit(UnitPercent), NotAvailable},
	{agrometeo.FieldDewPoint, AttrDewPoint, GroupCore, withUnit(UnitCelsius), NotAvailable},
	{agrometeo.FieldWindSpeed, AttrWindSpeed, GroupCore, withUnit(UnitSpeed), NotAvailable},
	{agrometeo.FieldWindDirectionLabel, AttrWindDirection, GroupCore, plain, NotAvailable},
	{agrometeo.FieldDelay, AttrDelay, GroupDelay, plain, NotAvailable},
	{agrometeo.FieldMaxDelay, AttrMaxDelay, GroupDelay, plain, NotAvailable},
	// the station website flag only reads as available when it is exactly 1
	{agrometeo.FieldWebAvailable, AttrWebAvailable, GroupAvailability, yesNo, no},
}

// upstream timestamp layouts seen in fecha, tried in order
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
}

func plain(v any) (string, bool) {
	if num, ok := v.(json.Number); ok {
		v = num.String()
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func withUnit(unit string) formatFunc {
	return func(v any) (string, bool) {
		s, ok := plain(v)
		if !ok {
			return "", false
		}
		return s + " " + unit, true
	}
}

func yesNo(v any) (string, bool) {
	if num, ok := v.(json.Number); ok {
		v = num.String()
	}
	if n, err := cast.ToIntE(v); err == nil && n == 1 {
		return yes, true
	}
	return no, true
}

// parseCoordinate reads a required coordinate that may arrive as a number or
// a numeric string.
func parseCoordinate(raw agrometeo.StationRecord, field string) (float64, error) {
	v, ok := raw[field]
	if !ok || v == nil {
		return 0, ErrMissingField
	}

	switch t := v.(type) {
	case bool:
		return 0, ErrNotNumeric
	case json.Number:
		v = t.String()
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			return 0, ErrMissingField
		}
		v = t
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotNumeric, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotFinite
	}
	return f, nil
}

// chartURL expands the chart template for a station. Templates without a %d
// verb get the id appended.
func chartURL(template string, id types.StationID) string {
	if strings.Contains(template, "%d") {
		return fmt.Sprintf(template, int(id))
	}
	return template + strconv.Itoa(int(id))
}

// toUTC interprets a local upstream timestamp in loc
func toUTC(value string, loc *time.Location) (string, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.UTC().Format(time.RFC3339), true
		}
	}
	return "", false
}
