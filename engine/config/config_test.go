package config

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-scroll/engine/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, float32(768), cfg.Device.Breakpoint)
	assert.Equal(t, time.Second, cfg.Loading.Fallback())
	require.Len(t, cfg.Timeline.Phases, 2)
	assert.Equal(t, Vec3{4, -28, 6}, *cfg.Timeline.Phases[0].Position)
}

func TestProfileRoundTripsDeviceDefaults(t *testing.T) {
	assert.Equal(t, device.DefaultProfile(), Default().Profile())
}

func TestDecodeYAMLOverridesDefaults(t *testing.T) {
	data := []byte(`
device:
  breakpoint: 900
camera:
  fov: 50
timeline:
  scrub: 0
  phases:
    - name: only
      start: 0
      end: 2
      position: [1, 2, 3]
      easing: linear
environment:
  background: 0x101010
`)
	cfg, err := Decode(data, ".yaml")
	require.NoError(t, err)

	assert.Equal(t, float32(900), cfg.Device.Breakpoint)
	assert.Equal(t, float32(50), cfg.Camera.Fov)
	assert.Equal(t, float32(100), cfg.Camera.Far, "unset fields keep defaults")
	require.Len(t, cfg.Timeline.Phases, 1)
	assert.Equal(t, Vec3{1, 2, 3}, *cfg.Timeline.Phases[0].Position)
	assert.Nil(t, cfg.Timeline.Phases[0].Rotation)
	assert.Equal(t, uint32(0x101010), cfg.Environment.Background)
}

func TestDecodeTOML(t *testing.T) {
	data := []byte(`
[loading]
fallback_seconds = 2.5

[showcase]
threshold_y = -25.0

[layout.elements.about]
left = 0.0
top = 900.0
width = 1280.0
height = 720.0
`)
	cfg, err := Decode(data, ".toml")
	require.NoError(t, err)

	assert.Equal(t, 2500*time.Millisecond, cfg.Loading.Fallback())
	assert.Equal(t, float32(-25), cfg.Showcase.ThresholdY)
	assert.Equal(t, float32(900), cfg.Layout.Elements["about"].Top)
	assert.Contains(t, cfg.Layout.Elements, "profile-card-target")
}

func TestDecodeRejectsUnknownExtension(t *testing.T) {
	_, err := Decode([]byte("{}"), ".json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Camera.Fov = 0
	cfg.Timeline.Phases[0].End = 0
	cfg.Background.MaxY = cfg.Background.MinY

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera.fov")
	assert.Contains(t, err.Error(), "garage-approach")
	assert.Contains(t, err.Error(), "background")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yml")
	require.NoError(t, os.WriteFile(path, []byte("loading:\n  workers: 2\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Loading.Workers)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWatchDeliversReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("loading:\n  workers: 2\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 4)
	require.NoError(t, Watch(ctx, path, nil, func(cfg *Config) { changes <- cfg }))

	require.NoError(t, os.WriteFile(path, []byte("loading:\n  workers: 6\n"), 0o644))

	// a truncating write can surface an intermediate empty file first
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changes:
			if cfg.Loading.Workers == 6 {
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestAssetFS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "car.glb"), []byte("glTF"), 0o644))

	cfg := Default()
	cfg.Loading.AssetRoot = dir
	data, err := fs.ReadFile(cfg.AssetFS(), "car.glb")
	require.NoError(t, err)
	assert.Equal(t, "glTF", string(data))
}

func TestLayoutConversion(t *testing.T) {
	layout := Default().Layout.Layout()

	assert.Equal(t, float32(4320), layout.DocumentHeight)
	require.Contains(t, layout.Elements, "profile-card-target")
	assert.Equal(t, float32(1280), layout.Elements["profile-card-target"].Top)
	assert.Equal(t, float32(320), layout.Elements["profile-card-target"].Width)
	assert.Len(t, layout.Elements, 4)
}
