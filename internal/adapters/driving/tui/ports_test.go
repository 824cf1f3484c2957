package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/motocheck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/services"
)

func newTestPorts() *Ports {
	inspections := services.NewInspectionService(memory.NewKeyValueStore(), domain.DefaultSchema())
	return &Ports{
		Inspections: inspections,
		Settings:    services.NewSettingsService(memory.NewConfigStore()),
	}
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil ports", func(t *testing.T) {
		var p *Ports
		assert.ErrorIs(t, p.Validate(), ErrMissingInspectionService)
	})

	t.Run("missing inspections", func(t *testing.T) {
		p := &Ports{Settings: services.NewSettingsService(memory.NewConfigStore())}
		assert.ErrorIs(t, p.Validate(), ErrMissingInspectionService)
	})

	t.Run("optional ports may be nil", func(t *testing.T) {
		p := newTestPorts()
		p.Settings = nil
		assert.NoError(t, p.Validate())
	})
}
