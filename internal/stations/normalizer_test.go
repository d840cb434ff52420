package stations

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/geonet-geomatica/Repositorio/internal/providers/agrometeo"
	"github.com/geonet-geomatica/Repositorio/internal/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixedZone struct {
	loc *time.Location
	err error
}

func (z fixedZone) Location(types.Coords) (*time.Location, error) {
	return z.loc, z.err
}

func sampleRecord() agrometeo.StationRecord {
	return agrometeo.StationRecord{
		"Nombre":               "Junín",
		"fecha":                "2025-01-15 10:30:00",
		"tempAire":             json.Number("23.4"),
		"humedad":              json.Number("45"),
		"puntoRocio":           json.Number("10.8"),
		"velocidadViento":      json.Number("3.2"),
		"direccionVientoTexto": "NE",
		"lng":                  json.Number("-68.5"),
		"lat":                  json.Number("-33.1"),
		"atraso":               json.Number("0"),
		"atraso_max":           json.Number("60"),
		"web":                  json.Number("1"),
	}
}

func allGroups() NormalizerOptions {
	return NormalizerOptions{
		Delay:        true,
		Availability: true,
		Chart:        true,
		ChartURL:     "https://agrometeo.mendoza.gov.ar/informes/grafico.php?estacion=%d",
	}
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer(allGroups(), discardLogger())

	feature, err := n.Normalize(5, sampleRecord())
	if err != nil {
		t.Fatalf("Normalize() unexpected error: %v", err)
	}

	if feature.ID != 5 {
		t.Errorf("ID = %d, want 5", feature.ID)
	}
	if feature.Geometry != types.NewCoords(-68.5, -33.1) {
		t.Errorf("Geometry = %+v, want lng -68.5 lat -33.1", feature.Geometry)
	}

	expected := []types.Attribute{
		{Name: AttrName, Value: "Junín"},
		{Name: AttrTimestamp, Value: "2025-01-15 10:30:00"},
		{Name: AttrAirTemp, Value: "23.4 °C"},
		{Name: AttrHumidity, Value: "45 %"},
		{Name: AttrDewPoint, Value: "10.8 °C"},
		{Name: AttrWindSpeed, Value: "3.2 m/s"},
		{Name: AttrWindDirection, Value: "NE"},
		{Name: AttrDelay, Value: "0"},
		{Name: AttrMaxDelay, Value: "60"},
		{Name: AttrWebAvailable, Value: "Sí"},
		{Name: AttrChartURL, Value: "https://agrometeo.mendoza.gov.ar/informes/grafico.php?estacion=5"},
	}
	if !reflect.DeepEqual(feature.Attributes, expected) {
		t.Errorf("Attributes = %+v\nwant %+v", feature.Attributes, expected)
	}
}

func TestNormalizeMissingValues(t *testing.T) {
	n := NewNormalizer(allGroups(), discardLogger())

	raw := agrometeo.StationRecord{
		"lng":      "-68.5",
		"lat":      "-33.1",
		"tempAire": nil,
		"humedad":  "",
	}

	feature, err := n.Normalize(2, raw)
	if err != nil {
		t.Fatalf("Normalize() unexpected error: %v", err)
	}

	if len(feature.Attributes) != len(n.AttributeNames()) {
		t.Fatalf("got %d attributes, want %d", len(feature.Attributes), len(n.AttributeNames()))
	}

	for _, name := range []string{AttrName, AttrTimestamp, AttrAirTemp, AttrHumidity, AttrDelay} {
		if got, _ := feature.Get(name); got != NotAvailable {
			t.Errorf("%s = %q, want %q", name, got, NotAvailable)
		}
	}
	if got, _ := feature.Get(AttrWebAvailable); got != "No" {
		t.Errorf("%s = %q, want %q", AttrWebAvailable, got, "No")
	}
}

func TestNormalizeRejectsBadGeometry(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
		err   error
	}{
		{name: "missing longitude", field: "lng", value: nil, err: ErrMissingField},
		{name: "text latitude", field: "lat", value: "abc", err: ErrNotNumeric},
		{name: "infinite longitude", field: "lng", value: "Inf", err: ErrNotFinite},
	}

	n := NewNormalizer(allGroups(), discardLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := sampleRecord()
			raw[tt.field] = tt.value

			_, err := n.Normalize(9, raw)

			var nerr *NormalizationError
			if !errors.As(err, &nerr) {
				t.Fatalf("error = %v, want *NormalizationError", err)
			}
			if nerr.StationID != 9 || nerr.Field != tt.field {
				t.Errorf("NormalizationError = %+v, want station 9 field %s", nerr, tt.field)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("error = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestAttributeNamesFollowGroups(t *testing.T) {
	tests := []struct {
		name     string
		opts     NormalizerOptions
		expected []string
	}{
		{
			name: "core only",
			opts: NormalizerOptions{},
			expected: []string{
				AttrName, AttrTimestamp, AttrAirTemp, AttrHumidity,
				AttrDewPoint, AttrWindSpeed, AttrWindDirection,
			},
		},
		{
			name: "utc without resolver stays off",
			opts: NormalizerOptions{UTC: true, Availability: true},
			expected: []string{
				AttrName, AttrTimestamp, AttrAirTemp, AttrHumidity,
				AttrDewPoint, AttrWindSpeed, AttrWindDirection, AttrWebAvailable,
			},
		},
		{
			name: "utc with resolver",
			opts: NormalizerOptions{UTC: true, Timezones: fixedZone{loc: time.UTC}},
			expected: []string{
				AttrName, AttrTimestamp, AttrAirTemp, AttrHumidity,
				AttrDewPoint, AttrWindSpeed, AttrWindDirection, AttrTimestampUTC,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNormalizer(tt.opts, discardLogger())

			names := n.AttributeNames()
			if !reflect.DeepEqual(names, tt.expected) {
				t.Errorf("AttributeNames() = %v, want %v", names, tt.expected)
			}

			feature, err := n.Normalize(1, sampleRecord())
			if err != nil {
				t.Fatalf("Normalize() unexpected error: %v", err)
			}
			for i, a := range feature.Attributes {
				if a.Name != names[i] {
					t.Errorf("attribute %d = %q, want %q", i, a.Name, names[i])
				}
			}
		})
	}
}

func TestNormalizeUTCTimestamp(t *testing.T) {
	mendoza := time.FixedZone("ART", -3*60*60)

	tests := []struct {
		name     string
		zone     fixedZone
		fecha    any
		expected string
	}{
		{name: "converted", zone: fixedZone{loc: mendoza}, fecha: "2025-01-15 10:30:00", expected: "2025-01-15T13:30:00Z"},
		{name: "unparseable", zone: fixedZone{loc: mendoza}, fecha: "ayer", expected: NotAvailable},
		{name: "missing", zone: fixedZone{loc: mendoza}, fecha: nil, expected: NotAvailable},
		{name: "no zone", zone: fixedZone{err: errors.New("ocean")}, fecha: "2025-01-15 10:30:00", expected: NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNormalizer(NormalizerOptions{UTC: true, Timezones: tt.zone}, discardLogger())

			raw := sampleRecord()
			raw["fecha"] = tt.fecha

			feature, err := n.Normalize(1, raw)
			if err != nil {
				t.Fatalf("Normalize() unexpected error: %v", err)
			}
			if got, _ := feature.Get(AttrTimestampUTC); got != tt.expected {
				t.Errorf("%s = %q, want %q", AttrTimestampUTC, got, tt.expected)
			}
		})
	}
}
