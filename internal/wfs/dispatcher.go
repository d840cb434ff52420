package wfs

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/geonet-geomatica/Repositorio/internal/types"
)

const (
	ContentTypeXML  = "application/xml; charset=utf-8"
	ContentTypeText = "text/plain; charset=utf-8"
)

// Aggregator produces the current feature collection for GetFeature
type Aggregator interface {
	Aggregate(ctx context.Context) (*types.FeatureCollection, error)
}

// Response is a complete WFS answer ready to be written to the client
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Dispatcher routes parsed WFS requests to the translator
type Dispatcher struct {
	translator *Translator
	aggregator Aggregator
	logger     *slog.Logger
}

func NewDispatcher(translator *Translator, aggregator Aggregator, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		translator: translator,
		aggregator: aggregator,
		logger:     logger.With("component", "wfs-dispatcher"),
	}
}

// Handle answers req. Only GetFeature reaches the upstream, and the returned
// error is non-nil only when that aggregation was cancelled.
func (d *Dispatcher) Handle(ctx context.Context, req WfsRequest, baseURL string) (Response, error) {
	if req.TypeName != DefaultTypeName && req.TypeName != d.translator.opts.TypeName {
		d.logger.Debug("ignoring unknown TYPENAME", "typename", req.TypeName)
	}

	switch req.Request {
	case RequestGetCapabilities:
		return xmlResponse(d.translator.Capabilities(baseURL)), nil

	case RequestDescribeFeatureType:
		return xmlResponse(d.translator.DescribeFeatureType()), nil

	case RequestGetFeature:
		fc, err := d.aggregator.Aggregate(ctx)
		if err != nil {
			return Response{}, fmt.Errorf("GetFeature: %w", err)
		}
		d.logger.Debug("serving features", "features", fc.Len())
		return xmlResponse(d.translator.FeatureCollection(fc)), nil

	case RequestInvalid:
		return d.invalid(req), nil
	}

	return d.invalid(req), nil
}

func (d *Dispatcher) invalid(req WfsRequest) Response {
	err := req.Err()
	if err == nil {
		err = fmt.Errorf("%w: unsupported REQUEST %q", ErrInvalidRequest, req.RawRequest)
	}
	d.logger.Debug("rejected WFS request", "error", err)
	return Response{
		Status:      http.StatusBadRequest,
		ContentType: ContentTypeText,
		Body:        []byte(err.Error()),
	}
}

func xmlResponse(body []byte) Response {
	return Response{
		Status:      http.StatusOK,
		ContentType: ContentTypeXML,
		Body:        body,
	}
}
