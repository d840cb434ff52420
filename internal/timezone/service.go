package timezone

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata" // containers often ship without /usr/share/zoneinfo

	"github.com/ringsaturn/tzf"

	"github.com/geonet-geomatica/Repositorio/internal/types"
)

// Service resolves the local time zone of a station position
type Service interface {
	Location(coords types.Coords) (*time.Location, error)
}

// service implements timezone lookup using tzf
type service struct {
	finder tzf.F

	mu        sync.RWMutex
	locations map[string]*time.Location
}

var (
	instance *service
	once     sync.Once
	initErr  error
)

// NewService creates or returns the singleton timezone service.
// tzf.Finder keeps the polygon data in memory, so it is only built once.
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{
			finder:    finder,
			locations: make(map[string]*time.Location),
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// Location returns the IANA zone containing coords, e.g.
// America/Argentina/Mendoza.
func (s *service) Location(coords types.Coords) (*time.Location, error) {
	name := s.finder.GetTimezoneName(coords.Longitude, coords.Latitude)
	if name == "" {
		return nil, fmt.Errorf("could not determine timezone for coordinates lon=%f, lat=%f", coords.Longitude, coords.Latitude)
	}

	s.mu.RLock()
	loc, ok := s.locations[name]
	s.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", name, err)
	}

	s.mu.Lock()
	s.locations[name] = loc
	s.mu.Unlock()

	return loc, nil
}
