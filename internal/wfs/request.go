package wfs

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidRequest is returned for any SERVICE/REQUEST combination this
// service does not answer.
var ErrInvalidRequest = errors.New("invalid WFS request")

const (
	DefaultTypeName = "Estaciones"
	DefaultSRSName  = "EPSG:4326"

	serviceWFS = "WFS"
)

// RequestType is the WFS operation being asked for
type RequestType int

const (
	RequestInvalid RequestType = iota
	RequestGetCapabilities
	RequestDescribeFeatureType
	RequestGetFeature
)

func (r RequestType) String() string {
	switch r {
	case RequestGetCapabilities:
		return "GetCapabilities"
	case RequestDescribeFeatureType:
		return "DescribeFeatureType"
	case RequestGetFeature:
		return "GetFeature"
	default:
		return "Invalid"
	}
}

// WfsRequest is a parsed WFS key-value-pair request
type WfsRequest struct {
	Service  string
	Request  RequestType
	TypeName string
	SRSName  string

	// RawRequest is the REQUEST parameter as sent, for error messages
	RawRequest string
}

// ParseRequest reads SERVICE, REQUEST, TYPENAME and SRSNAME from query
// values. Parameter names and the SERVICE/REQUEST values are matched
// case-insensitively. TYPENAME and SRSNAME fall back to the defaults.
func ParseRequest(values url.Values) WfsRequest {
	params := make(map[string]string, len(values))
	for key, vals := range values {
		k := strings.ToUpper(strings.TrimSpace(key))
		if _, seen := params[k]; seen || len(vals) == 0 {
			continue
		}
		params[k] = strings.TrimSpace(vals[0])
	}

	req := WfsRequest{
		Service:    params["SERVICE"],
		RawRequest: params["REQUEST"],
		TypeName:   params["TYPENAME"],
		SRSName:    params["SRSNAME"],
	}
	if req.TypeName == "" {
		req.TypeName = DefaultTypeName
	}
	if req.SRSName == "" {
		req.SRSName = DefaultSRSName
	}

	if !strings.EqualFold(req.Service, serviceWFS) {
		return req
	}

	switch strings.ToLower(req.RawRequest) {
	case "getcapabilities":
		req.Request = RequestGetCapabilities
	case "describefeaturetype":
		req.Request = RequestDescribeFeatureType
	case "getfeature":
		req.Request = RequestGetFeature
	}

	return req
}

// Err explains why the request is invalid, or returns nil
func (r WfsRequest) Err() error {
	switch {
	case r.Service == "":
		return fmt.Errorf("%w: missing SERVICE parameter", ErrInvalidRequest)
	case !strings.EqualFold(r.Service, serviceWFS):
		return fmt.Errorf("%w: unsupported SERVICE %q", ErrInvalidRequest, r.Service)
	case r.RawRequest == "":
		return fmt.Errorf("%w: missing REQUEST parameter", ErrInvalidRequest)
	case r.Request == RequestInvalid:
		return fmt.Errorf("%w: unsupported REQUEST %q", ErrInvalidRequest, r.RawRequest)
	}
	return nil
}
