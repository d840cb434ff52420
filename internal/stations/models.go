package stations

import (
	"errors"
	"fmt"

	"github.com/geonet-geomatica/Repositorio/internal/types"
)

// Canonical attribute names. These are the GeoJSON property keys consumers
// depend on, so they must not change.
const (
	AttrName          = "Nombre"
	AttrTimestamp     = "Fecha"
	AttrAirTemp       = "Temperatura Aire"
	AttrHumidity      = "Humedad"
	AttrDewPoint      = "Punto de Rocío"
	AttrWindSpeed     = "Velocidad Viento"
	AttrWindDirection = "Dirección del Viento"
	AttrDelay         = "Atraso"
	AttrMaxDelay      = "Máximo Atraso Permitido"
	AttrWebAvailable  = "Web Disponible"
	AttrChartURL      = "URL Gráfico"
	AttrTimestampUTC  = "Fecha UTC"
)

// NotAvailable fills attributes whose upstream value is missing
const NotAvailable = "N/A"

const (
	yes = "Sí"
	no  = "No"
)

// Physical units appended to display values
const (
	UnitCelsius = "°C"
	UnitPercent = "%"
	UnitSpeed   = "m/s"
)

// Station outcomes reported to the Recorder
const (
	OutcomeOK          = "ok"
	OutcomeUnavailable = "unavailable"
	OutcomeNoRecord    = "no_record"
	OutcomeInvalid     = "invalid"
	OutcomePanic       = "panic"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrNotNumeric   = errors.New("value is not numeric")
	ErrNotFinite    = errors.New("value is not a finite number")
)

// NormalizationError reports why a station reading could not become a feature
type NormalizationError struct {
	StationID types.StationID
	Field     string
	Err       error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("station %d: field %q: %v", e.StationID, e.Field, e.Err)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}
