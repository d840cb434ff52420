package agrometeo

import (
	"context"
	"errors"
)

var (
	// ErrUpstreamUnavailable covers transport errors, timeouts, non-2xx
	// statuses and bodies that are not a JSON array.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrNoRecord means the upstream answered with an empty array.
	ErrNoRecord = errors.New("upstream returned no record")
)

// Upstream field names of an instantaneous station reading
const (
	FieldName               = "Nombre"
	FieldTimestamp          = "fecha"
	FieldAirTemperature     = "tempAire"
	FieldHumidity           = "humedad"
	FieldDewPoint           = "puntoRocio"
	FieldWindSpeed          = "velocidadViento"
	FieldWindDirectionLabel = "direccionVientoTexto"
	FieldLongitude          = "lng"
	FieldLatitude           = "lat"
	FieldDelay              = "atraso"
	FieldMaxDelay           = "atraso_max"
	FieldWebAvailable       = "web"
)

// StationRecord is the first element of the getInstantaneas response. Values
// are loosely typed: numbers arrive as json.Number, sometimes as strings.
type StationRecord map[string]any

// IsBreakerSuccess reports whether err must not count against the upstream.
// An empty answer means the host is up, and a cancelled caller context means
// the client went away. A per-call timeout surfaces as DeadlineExceeded and
// still counts as a failure.
func IsBreakerSuccess(err error) bool {
	return err == nil || errors.Is(err, ErrNoRecord) || errors.Is(err, context.Canceled)
}
