package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type fakeFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(_ fiber.Router) error {
	f.loaded = true
	return f.loadErr
}

func TestLoadAllSkipsDisabledFeatures(t *testing.T) {
	app := fiber.New()
	on := &fakeFeature{name: "on", enabled: true}
	off := &fakeFeature{name: "off", enabled: false}

	mgr := NewManager()
	mgr.Register(on)
	mgr.Register(off)

	assert.NoError(t, mgr.LoadAll(app))
	assert.True(t, on.loaded)
	assert.False(t, off.loaded)
}

func TestLoadAllStopsOnError(t *testing.T) {
	app := fiber.New()
	bad := &fakeFeature{name: "bad", enabled: true, loadErr: errors.New("boom")}
	after := &fakeFeature{name: "after", enabled: true}

	mgr := NewManager()
	mgr.Register(bad)
	mgr.Register(after)

	err := mgr.LoadAll(app)
	assert.ErrorContains(t, err, "load feature bad")
	assert.False(t, after.loaded)
}
