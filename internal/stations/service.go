package stations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/geonet-geomatica/Repositorio/internal/config"
	"github.com/geonet-geomatica/Repositorio/internal/providers/agrometeo"
	"github.com/geonet-geomatica/Repositorio/internal/resilience"
	"github.com/geonet-geomatica/Repositorio/internal/timezone"
	"github.com/geonet-geomatica/Repositorio/internal/types"
)

// StationSource fetches the raw reading of one station
type StationSource interface {
	FetchStation(ctx context.Context, stationID int) (agrometeo.StationRecord, error)
}

// Recorder receives per-station outcomes and aggregation timings
type Recorder interface {
	RecordStationOutcome(outcome string)
	RecordAggregation(duration time.Duration, features int)
}

// BreakerRecorder is implemented by recorders that also track the upstream
// circuit breaker
type BreakerRecorder interface {
	RecordBreakerState(name string, state gobreaker.State)
}

// Service aggregates every configured station into a feature collection
type Service interface {
	// Aggregate returns the features of all stations that could be fetched
	// and normalized, in ascending station id order. It only fails when ctx
	// is cancelled.
	Aggregate(ctx context.Context) (*types.FeatureCollection, error)

	// AttributeNames lists the attributes each feature carries
	AttributeNames() []string
}

type aggregator struct {
	source     StationSource
	normalizer *Normalizer
	stationIDs []int
	workers    int
	recorder   Recorder
	logger     *slog.Logger
}

// NewService creates the aggregator with a real upstream client
func NewService(cfg *config.Config, recorder Recorder, logger *slog.Logger) (Service, error) {
	opts := []agrometeo.Option{agrometeo.WithTimeout(cfg.Upstream.Timeout)}
	if cfg.Upstream.CircuitBreaker.Enabled {
		breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:             "agrometeo-upstream",
			Timeout:          cfg.Upstream.CircuitBreaker.OpenTimeout,
			FailureThreshold: cfg.Upstream.CircuitBreaker.FailureThreshold,
			IsSuccessful:     agrometeo.IsBreakerSuccess,
			OnStateChange:    breakerHook(recorder),
		}, logger)
		opts = append(opts, agrometeo.WithCircuitBreaker(breaker))
	}
	client := agrometeo.NewClient(cfg.Upstream.BaseURL, logger, opts...)

	normalizerOpts := NormalizerOptions{
		Delay:        cfg.Attributes.Delay,
		Availability: cfg.Attributes.Availability,
		Chart:        cfg.Attributes.Chart,
		UTC:          cfg.Attributes.UTC,
		ChartURL:     cfg.Attributes.ChartURL,
	}
	if cfg.Attributes.UTC {
		tzSvc, err := timezone.NewService()
		if err != nil {
			return nil, fmt.Errorf("failed to create timezone service: %w", err)
		}
		normalizerOpts.Timezones = tzSvc
	}

	return NewServiceWithProviders(
		client,
		NewNormalizer(normalizerOpts, logger),
		cfg.StationIDs(),
		cfg.Upstream.Workers,
		recorder,
		logger,
	), nil
}

// NewServiceWithProviders creates the aggregator with a custom source.
// This is useful for testing with mock providers.
func NewServiceWithProviders(
	source StationSource,
	normalizer *Normalizer,
	stationIDs []int,
	workers int,
	recorder Recorder,
	logger *slog.Logger,
) Service {
	if workers < 1 {
		workers = 1
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &aggregator{
		source:     source,
		normalizer: normalizer,
		stationIDs: stationIDs,
		workers:    workers,
		recorder:   recorder,
		logger:     logger.With("component", "station-aggregator"),
	}
}

func (s *aggregator) AttributeNames() []string {
	return s.normalizer.AttributeNames()
}

func (s *aggregator) Aggregate(ctx context.Context) (*types.FeatureCollection, error) {
	start := time.Now()

	// one slot per station keeps the output in configured order whatever
	// order the workers finish in
	slots := make([]*types.Feature, len(s.stationIDs))

	var g errgroup.Group
	g.SetLimit(s.workers)

	for i, id := range s.stationIDs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			slots[i] = s.collect(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		s.logger.Info("aggregation abandoned", "error", err, "elapsed", time.Since(start))
		return nil, fmt.Errorf("aggregation cancelled: %w", err)
	}

	fc := &types.FeatureCollection{Features: make([]types.Feature, 0, len(slots))}
	for _, f := range slots {
		if f != nil {
			fc.Features = append(fc.Features, *f)
		}
	}

	elapsed := time.Since(start)
	s.recorder.RecordAggregation(elapsed, fc.Len())
	s.logger.Debug("aggregation finished",
		"stations", len(s.stationIDs),
		"features", fc.Len(),
		"elapsed", elapsed,
	)

	return fc, nil
}

// collect fetches and normalizes one station. Nil means the station is absent
// from this pass; nothing here may escape to the other stations.
func (s *aggregator) collect(ctx context.Context, id int) (feature *types.Feature) {
	logger := s.logger.With("station_id", id)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("station processing panicked", "panic", r)
			s.recorder.RecordStationOutcome(OutcomePanic)
			feature = nil
		}
	}()

	if ctx.Err() != nil {
		return nil
	}

	raw, err := s.source.FetchStation(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		outcome := OutcomeUnavailable
		if errors.Is(err, agrometeo.ErrNoRecord) {
			outcome = OutcomeNoRecord
		}
		logger.Warn("station unavailable", "error", err)
		s.recorder.RecordStationOutcome(outcome)
		return nil
	}

	f, err := s.normalizer.Normalize(types.StationID(id), raw)
	if err != nil {
		logger.Warn("station dropped", "error", err)
		s.recorder.RecordStationOutcome(OutcomeInvalid)
		return nil
	}

	s.recorder.RecordStationOutcome(OutcomeOK)
	return &f
}

func breakerHook(recorder Recorder) func(name string, from, to gobreaker.State) {
	br, ok := recorder.(BreakerRecorder)
	if !ok {
		return nil
	}
	return func(name string, _, to gobreaker.State) {
		br.RecordBreakerState(name, to)
	}
}

type noopRecorder struct{}

func (noopRecorder) RecordStationOutcome(string)         {}
func (noopRecorder) RecordAggregation(time.Duration, int) {}
