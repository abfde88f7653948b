package domain

import (
	"errors"
	"sort"
	"time"

	sharedDomain "github.com/praxisdesk/availability/internal/shared/domain"
	"github.com/google/uuid"
)

var ErrOverrideNotFound = errors.New("no availability override for service type")

// Schedule is the aggregate a provider's availability hangs off: at most one
// default configuration plus any number of per-service-type overrides. An
// override is a total replacement of the default for its service type.
type Schedule struct {
	sharedDomain.BaseAggregateRoot
	name          string
	defaultConfig *AvailabilityConfig
	overrides     map[string]*AvailabilityConfig
}

// NewSchedule creates an empty schedule.
func NewSchedule(name string) *Schedule {
	return &Schedule{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		name:              name,
		overrides:         make(map[string]*AvailabilityConfig),
	}
}

func (s *Schedule) Name() string { return s.name }

// DefaultConfig returns the default-scope configuration, or nil if none is set.
func (s *Schedule) DefaultConfig() *AvailabilityConfig {
	return s.defaultConfig
}

// SetDefaultConfig replaces the default-scope configuration.
func (s *Schedule) SetDefaultConfig(cfg *AvailabilityConfig) {
	s.defaultConfig = cfg
	s.Touch()
	s.AddDomainEvent(NewAvailabilityChanged(s.ID(), ""))
}

// SetOverride replaces the configuration for one service type.
func (s *Schedule) SetOverride(serviceType string, cfg *AvailabilityConfig) {
	s.overrides[serviceType] = cfg
	s.Touch()
	s.AddDomainEvent(NewAvailabilityChanged(s.ID(), serviceType))
}

// RemoveOverride drops the configuration for one service type.
func (s *Schedule) RemoveOverride(serviceType string) error {
	if _, ok := s.overrides[serviceType]; !ok {
		return ErrOverrideNotFound
	}
	delete(s.overrides, serviceType)
	s.Touch()
	s.AddDomainEvent(NewAvailabilityChanged(s.ID(), serviceType))
	return nil
}

// ConfigFor resolves the configuration for a service type: the override when
// one exists, the default otherwise. Returns nil when neither is set.
func (s *Schedule) ConfigFor(serviceType string) *AvailabilityConfig {
	if serviceType != "" {
		if cfg, ok := s.overrides[serviceType]; ok {
			return cfg
		}
	}
	return s.defaultConfig
}

// Overrides returns the service overrides sorted by service type.
func (s *Schedule) Overrides() []ServiceOverride {
	out := make([]ServiceOverride, 0, len(s.overrides))
	for st, cfg := range s.overrides {
		out = append(out, ServiceOverride{ServiceType: st, Config: cfg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceType < out[j].ServiceType })
	return out
}

// RehydrateSchedule recreates a schedule from persisted state.
func RehydrateSchedule(
	id uuid.UUID,
	name string,
	defaultConfig *AvailabilityConfig,
	overrides []ServiceOverride,
	createdAt, updatedAt time.Time,
) *Schedule {
	s := &Schedule{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		),
		name:          name,
		defaultConfig: defaultConfig,
		overrides:     make(map[string]*AvailabilityConfig, len(overrides)),
	}
	for _, o := range overrides {
		s.overrides[o.ServiceType] = o.Config
	}
	return s
}
