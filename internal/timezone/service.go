package timezone

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"
)

// Service provides timezone lookup functionality
type Service interface {
	GetTimezone(latitude, longitude float64) (string, error)
}

// service implements timezone lookup using tzf
type service struct {
	finder tzf.F
	mu     sync.RWMutex
}

var (
	instance *service
	initErr  error
	once     sync.Once
)

// NewService creates or returns the singleton timezone service
// Uses singleton pattern because tzf.Finder loads timezone data into memory
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{
			finder: finder,
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// GetTimezone returns the IANA timezone name for the given coordinates
// Returns timezone names like "America/Denver", "Europe/London", etc.
func (s *service) GetTimezone(latitude, longitude float64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	timezone := s.finder.GetTimezoneName(longitude, latitude)
	if timezone == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", latitude, longitude)
	}

	return timezone, nil
}

// lazyService defers loading the tzf data until a lookup is needed.
type lazyService struct{}

// Lazy returns a Service that initializes the singleton on first use.
func Lazy() Service {
	return lazyService{}
}

func (lazyService) GetTimezone(latitude, longitude float64) (string, error) {
	svc, err := NewService()
	if err != nil {
		return "", err
	}
	return svc.GetTimezone(latitude, longitude)
}

// LookupName returns the IANA zone for coordinates given as decimal strings.
func LookupName(svc Service, latitude, longitude string) (string, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latitude), 64)
	if err != nil {
		return "", fmt.Errorf("invalid latitude %q: %w", latitude, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(longitude), 64)
	if err != nil {
		return "", fmt.Errorf("invalid longitude %q: %w", longitude, err)
	}
	return svc.GetTimezone(lat, lon)
}

// ResolveLocation returns the zone named by name. When name is empty, "auto"
// or unknown to the system zone database, the zone is looked up from the
// coordinates instead, and time.Local is the last resort.
func ResolveLocation(svc Service, name, latitude, longitude string) *time.Location {
	if name != "" && !strings.EqualFold(name, "auto") {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if svc == nil {
		return time.Local
	}

	tzName, err := LookupName(svc, latitude, longitude)
	if err != nil {
		return time.Local
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return time.Local
	}
	return loc
}
