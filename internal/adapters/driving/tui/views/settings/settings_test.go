package settings

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/motocheck/internal/core/domain"
)

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsService) Set(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *MockSettingsService) Keys() []string {
	return []string{
		"company.name", "company.product_name", "company.tax_id", "company.phone",
		"company.address", "company.logo_url", "storage.backend", "storage.data_dir",
		"report.output_dir", "photos.max_concurrency",
	}
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func testSettings() *domain.AppSettings {
	s := domain.DefaultAppSettings()
	s.Company.Phone = "+55 11 5555-0000"
	return &s
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// loadedView returns a ready view holding settings.
func loadedView(svc *MockSettingsService) *View {
	view := NewView(styles.DefaultStyles(), svc)
	view.SetDimensions(100, 40)
	view.Update(messages.SettingsLoaded{Settings: testSettings()})
	return view
}

func TestNewView(t *testing.T) {
	view := NewView(nil, &MockSettingsService{})

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Len(t, view.keys, 10)
	assert.False(t, view.Editing())
}

func TestView_Init_LoadsSettings(t *testing.T) {
	svc := &MockSettingsService{}
	svc.On("Get").Return(testSettings(), nil)
	view := NewView(nil, svc)

	msg := view.Init()()

	loaded, ok := msg.(messages.SettingsLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Equal(t, "+55 11 5555-0000", loaded.Settings.Company.Phone)
	svc.AssertExpectations(t)
}

func TestView_Init_NilService(t *testing.T) {
	view := NewView(nil, nil)

	loaded, ok := view.Init()().(messages.SettingsLoaded)
	require.True(t, ok)
	assert.Error(t, loaded.Err)
}

func TestView_EditAndSave(t *testing.T) {
	svc := &MockSettingsService{}
	svc.On("Set", "company.tax_id", "12.345.678/0001-90").Return(nil)
	view := loadedView(svc)

	view.Update(key('j'))
	view.Update(key('j'))
	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, view.Editing())

	for _, r := range "12.345.678/0001-90" {
		view.Update(key(r))
	}
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, view.Editing())

	saved, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	assert.NoError(t, saved.Err)
	svc.AssertExpectations(t)
}

func TestView_EditStartsWithCurrentValue(t *testing.T) {
	view := loadedView(&MockSettingsService{})

	view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, domain.DefaultAppSettings().Company.Name, view.input.Value())
}

func TestView_EditCancel(t *testing.T) {
	svc := &MockSettingsService{}
	view := loadedView(svc)

	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.False(t, view.Editing())
	svc.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestView_BackendCycles(t *testing.T) {
	svc := &MockSettingsService{}
	svc.On("Set", "storage.backend", "badger").Return(nil)
	view := loadedView(svc)
	view.selected = 6

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, view.Editing())

	cmd()
	svc.AssertExpectations(t)
}

func TestView_SaveError(t *testing.T) {
	svc := &MockSettingsService{}
	view := loadedView(svc)

	view.Update(messages.SettingsSaved{Err: errors.New("invalid input: photos.max_concurrency must be an integer")})

	assert.Contains(t, view.View(), "must be an integer")
}

func TestView_SaveReloads(t *testing.T) {
	svc := &MockSettingsService{}
	svc.On("Get").Return(testSettings(), nil)
	view := loadedView(svc)

	_, cmd := view.Update(messages.SettingsSaved{})

	require.NotNil(t, cmd)
	_, ok := cmd().(messages.SettingsLoaded)
	assert.True(t, ok)
	assert.Contains(t, view.View(), "Saved")
}

func TestView_EscGoesToMenu(t *testing.T) {
	view := loadedView(&MockSettingsService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Navigation_Bounds(t *testing.T) {
	view := loadedView(&MockSettingsService{})

	view.Update(key('k'))
	assert.Equal(t, 0, view.selected)

	for i := 0; i < 20; i++ {
		view.Update(key('j'))
	}
	assert.Equal(t, 9, view.selected)
}

func TestView_View(t *testing.T) {
	t.Run("not ready", func(t *testing.T) {
		view := NewView(nil, &MockSettingsService{})
		assert.Contains(t, view.View(), "Initialising")
	})

	t.Run("loading", func(t *testing.T) {
		view := NewView(nil, &MockSettingsService{})
		view.SetDimensions(80, 24)
		assert.Contains(t, view.View(), "Loading settings")
	})

	t.Run("loaded", func(t *testing.T) {
		output := loadedView(&MockSettingsService{}).View()

		assert.Contains(t, output, "Company")
		assert.Contains(t, output, "Storage")
		assert.Contains(t, output, "company.phone")
		assert.Contains(t, output, "+55 11 5555-0000")
		assert.Contains(t, output, "(not set)")
		assert.Contains(t, output, "SQLite")
	})
}

func TestValue(t *testing.T) {
	s := testSettings()

	assert.Equal(t, "sqlite", Value(s, "storage.backend"))
	assert.Equal(t, "4", Value(s, "photos.max_concurrency"))
	assert.Equal(t, ".", Value(s, "report.output_dir"))
	assert.Equal(t, "", Value(s, "unknown.key"))
}

func TestNextBackend(t *testing.T) {
	assert.Equal(t, domain.StorageBackendBadger, nextBackend(domain.StorageBackendSQLite))
	assert.Equal(t, domain.StorageBackendSQLite, nextBackend(domain.StorageBackendBadger))
	assert.Equal(t, domain.StorageBackendSQLite, nextBackend("other"))
}

func TestView_Reset(t *testing.T) {
	view := loadedView(&MockSettingsService{})
	view.selected = 3
	view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	view.Reset()

	assert.Equal(t, 0, view.selected)
	assert.False(t, view.Editing())
}
