package domain_test

import (
	"testing"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_ConfigFor(t *testing.T) {
	s := domain.NewSchedule("Dr. Weber")

	// No configuration at all.
	assert.Nil(t, s.ConfigFor(""))
	assert.Nil(t, s.ConfigFor("physio"))

	def := domain.NewAvailabilityConfig()
	def.Week.EnableDay(time.Monday)
	s.SetDefaultConfig(def)

	override := domain.NewAvailabilityConfig()
	override.Week.EnableDay(time.Saturday)
	s.SetOverride("physio", override)

	// Overrides replace the default wholesale for their service type.
	assert.Same(t, override, s.ConfigFor("physio"))
	assert.Same(t, def, s.ConfigFor("massage"))
	assert.Same(t, def, s.ConfigFor(""))
}

func TestSchedule_SetDefaultConfig_EmitsEvent(t *testing.T) {
	s := domain.NewSchedule("Dr. Weber")
	s.SetDefaultConfig(domain.NewAvailabilityConfig())

	events := s.DomainEvents()
	require.Len(t, events, 1)
	evt, ok := events[0].(domain.AvailabilityChangedEvent)
	require.True(t, ok)
	assert.Equal(t, s.ID(), evt.AggregateID())
	assert.Equal(t, domain.RoutingKeyAvailabilityChanged, evt.RoutingKey())
	assert.Empty(t, evt.ServiceType)
}

func TestSchedule_RemoveOverride(t *testing.T) {
	s := domain.NewSchedule("Dr. Weber")
	s.SetOverride("physio", domain.NewAvailabilityConfig())

	require.NoError(t, s.RemoveOverride("physio"))
	assert.ErrorIs(t, s.RemoveOverride("physio"), domain.ErrOverrideNotFound)
}

func TestSchedule_Overrides_Sorted(t *testing.T) {
	s := domain.NewSchedule("Dr. Weber")
	s.SetOverride("physio", domain.NewAvailabilityConfig())
	s.SetOverride("consult", domain.NewAvailabilityConfig())

	overrides := s.Overrides()
	require.Len(t, overrides, 2)
	assert.Equal(t, "consult", overrides[0].ServiceType)
	assert.Equal(t, "physio", overrides[1].ServiceType)
}

func TestRehydrateSchedule(t *testing.T) {
	id := uuid.New()
	def := domain.NewAvailabilityConfig()
	created := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	s := domain.RehydrateSchedule(id, "Praxis Nord", def,
		[]domain.ServiceOverride{{ServiceType: "physio", Config: domain.NewAvailabilityConfig()}},
		created, created)

	assert.Equal(t, id, s.ID())
	assert.Same(t, def, s.DefaultConfig())
	assert.NotNil(t, s.ConfigFor("physio"))
	assert.Empty(t, s.DomainEvents())
}
