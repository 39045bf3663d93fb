// Package config holds every tunable of the presentation: device tiers, camera choreography,
// actor constants, loading behavior and the fallback document layout. Values load from YAML or TOML
// over the production defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/device"
	"github.com/Carmen-Shannon/oxy-scroll/engine/viewport"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned when a config file extension has no decoder.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Vec3 is a three-component vector as written in config files: [x, y, z].
type Vec3 [3]float32

// Vec converts to an mgl32 vector.
func (v Vec3) Vec() mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

// Config is the full set of tunables.
type Config struct {
	Device      DeviceConfig      `yaml:"device" toml:"device"`
	Camera      CameraConfig      `yaml:"camera" toml:"camera"`
	Timeline    TimelineConfig    `yaml:"timeline" toml:"timeline"`
	Loading     LoadingConfig     `yaml:"loading" toml:"loading"`
	Character   CharacterConfig   `yaml:"character" toml:"character"`
	Showcase    ShowcaseConfig    `yaml:"showcase" toml:"showcase"`
	Background  ParticleConfig    `yaml:"background" toml:"background"`
	Environment EnvironmentConfig `yaml:"environment" toml:"environment"`
	Layout      LayoutConfig      `yaml:"layout" toml:"layout"`
}

// DeviceConfig selects quality settings per tier.
type DeviceConfig struct {
	Breakpoint float32    `yaml:"breakpoint" toml:"breakpoint"`
	Desktop    TierConfig `yaml:"desktop" toml:"desktop"`
	Mobile     TierConfig `yaml:"mobile" toml:"mobile"`
}

// TierConfig mirrors device.Settings for one tier.
type TierConfig struct {
	Antialias           bool    `yaml:"antialias" toml:"antialias"`
	Shadows             bool    `yaml:"shadows" toml:"shadows"`
	PixelRatioCap       float32 `yaml:"pixel_ratio_cap" toml:"pixel_ratio_cap"`
	ParticleCount       int     `yaml:"particle_count" toml:"particle_count"`
	HeavyActors         bool    `yaml:"heavy_actors" toml:"heavy_actors"`
	CameraZ             float32 `yaml:"camera_z" toml:"camera_z"`
	ToneMappingExposure float32 `yaml:"tone_mapping_exposure" toml:"tone_mapping_exposure"`
}

// CameraConfig holds the perspective settings and the projection plane used for anchors.
type CameraConfig struct {
	// Fov is the vertical field of view in degrees.
	Fov    float32 `yaml:"fov" toml:"fov"`
	Near   float32 `yaml:"near" toml:"near"`
	Far    float32 `yaml:"far" toml:"far"`
	PlaneZ float32 `yaml:"plane_z" toml:"plane_z"`
}

// PhaseConfig is one camera tween. Position and Rotation are optional targets.
type PhaseConfig struct {
	Name     string  `yaml:"name" toml:"name"`
	Start    float32 `yaml:"start" toml:"start"`
	End      float32 `yaml:"end" toml:"end"`
	Position *Vec3   `yaml:"position,omitempty" toml:"position,omitempty"`
	Rotation *Vec3   `yaml:"rotation,omitempty" toml:"rotation,omitempty"`
	Easing   string  `yaml:"easing" toml:"easing"`
}

// TimelineConfig describes the scroll-bound camera choreography.
type TimelineConfig struct {
	// Duration is the timeline length in timeline units. Zero means the latest phase end.
	Duration float32 `yaml:"duration" toml:"duration"`
	// Scrub is the smoothing lag in seconds; zero follows scroll immediately.
	Scrub  float32       `yaml:"scrub" toml:"scrub"`
	Phases []PhaseConfig `yaml:"phases" toml:"phases"`
}

// LoadingConfig controls the asset gateway and the loading-complete fallback.
type LoadingConfig struct {
	FallbackSeconds float32 `yaml:"fallback_seconds" toml:"fallback_seconds"`
	Workers         int     `yaml:"workers" toml:"workers"`
	QueueSize       int     `yaml:"queue_size" toml:"queue_size"`
	AssetRoot       string  `yaml:"asset_root" toml:"asset_root"`
}

// Fallback returns FallbackSeconds as a duration.
func (l LoadingConfig) Fallback() time.Duration {
	return time.Duration(float64(l.FallbackSeconds) * float64(time.Second))
}

// IdleConfig is the character's sinusoidal idle motion.
type IdleConfig struct {
	BobAmplitude  float32 `yaml:"bob_amplitude" toml:"bob_amplitude"`
	BobFrequency  float32 `yaml:"bob_frequency" toml:"bob_frequency"`
	SwayAmplitude float32 `yaml:"sway_amplitude" toml:"sway_amplitude"`
	SwayFrequency float32 `yaml:"sway_frequency" toml:"sway_frequency"`
	TiltAmplitude float32 `yaml:"tilt_amplitude" toml:"tilt_amplitude"`
	TiltFrequency float32 `yaml:"tilt_frequency" toml:"tilt_frequency"`
}

// CharacterConfig tunes the anchored character.
type CharacterConfig struct {
	Model               string         `yaml:"model" toml:"model"`
	HeroDesktop         Vec3           `yaml:"hero_desktop" toml:"hero_desktop"`
	HeroMobile          Vec3           `yaml:"hero_mobile" toml:"hero_mobile"`
	Anchor              string         `yaml:"anchor" toml:"anchor"`
	Section             string         `yaml:"section" toml:"section"`
	AnchorOffsetDesktop Vec3           `yaml:"anchor_offset_desktop" toml:"anchor_offset_desktop"`
	AnchorOffsetMobile  Vec3           `yaml:"anchor_offset_mobile" toml:"anchor_offset_mobile"`
	CenterOnMobile      bool           `yaml:"center_on_mobile" toml:"center_on_mobile"`
	HideOffset          float32        `yaml:"hide_offset" toml:"hide_offset"`
	FinalScale          float32        `yaml:"final_scale" toml:"final_scale"`
	ExtraYaw            float32        `yaml:"extra_yaw" toml:"extra_yaw"`
	ModelScaleDesktop   float32        `yaml:"model_scale_desktop" toml:"model_scale_desktop"`
	ModelScaleMobile    float32        `yaml:"model_scale_mobile" toml:"model_scale_mobile"`
	ModelOffsetY        float32        `yaml:"model_offset_y" toml:"model_offset_y"`
	Idle                IdleConfig     `yaml:"idle" toml:"idle"`
	Halo                ParticleConfig `yaml:"halo" toml:"halo"`
	Mask                ParticleConfig `yaml:"mask" toml:"mask"`
}

// ShowcaseConfig tunes the showcase vehicle.
type ShowcaseConfig struct {
	Model             string  `yaml:"model" toml:"model"`
	Region            string  `yaml:"region" toml:"region"`
	Position          Vec3    `yaml:"position" toml:"position"`
	ThresholdY        float32 `yaml:"threshold_y" toml:"threshold_y"`
	DragSensitivity   float32 `yaml:"drag_sensitivity" toml:"drag_sensitivity"`
	ModelScaleDesktop float32 `yaml:"model_scale_desktop" toml:"model_scale_desktop"`
	ModelScaleMobile  float32 `yaml:"model_scale_mobile" toml:"model_scale_mobile"`
	PlaceholderSpin   float32 `yaml:"placeholder_spin" toml:"placeholder_spin"`
	PlaceholderWobble float32 `yaml:"placeholder_wobble" toml:"placeholder_wobble"`
}

// ParticleConfig describes a drifting point cloud. Y wraps within [MinY, MaxY).
type ParticleConfig struct {
	// Count is the particle count; zero on the background field means "use the tier's count".
	Count      int     `yaml:"count" toml:"count"`
	HalfExtent Vec3    `yaml:"half_extent" toml:"half_extent"`
	MinY       float32 `yaml:"min_y" toml:"min_y"`
	MaxY       float32 `yaml:"max_y" toml:"max_y"`
	// Speed is the upward drift in units per second.
	Speed float32 `yaml:"speed" toml:"speed"`
	Seed  uint64  `yaml:"seed" toml:"seed"`
}

// EnvironmentConfig describes the scene environment.
type EnvironmentConfig struct {
	Background       uint32  `yaml:"background" toml:"background"`
	FogDensity       float32 `yaml:"fog_density" toml:"fog_density"`
	AmbientIntensity float32 `yaml:"ambient_intensity" toml:"ambient_intensity"`
	EnvironmentMap   bool    `yaml:"environment_map" toml:"environment_map"`
}

// RectConfig is an element rectangle in document coordinates.
type RectConfig struct {
	Left   float32 `yaml:"left" toml:"left"`
	Top    float32 `yaml:"top" toml:"top"`
	Width  float32 `yaml:"width" toml:"width"`
	Height float32 `yaml:"height" toml:"height"`
}

// Rect converts to a common.Rect in document coordinates.
func (r RectConfig) Rect() common.Rect {
	return common.Rect{Left: r.Left, Top: r.Top, Width: r.Width, Height: r.Height}
}

// LayoutConfig is the simulated document used when no browser document exists (desktop runs).
type LayoutConfig struct {
	DocumentHeight float32 `yaml:"document_height" toml:"document_height"`
	// ReferenceWidth scales the layout with the window width when positive.
	ReferenceWidth float32               `yaml:"reference_width" toml:"reference_width"`
	Elements       map[string]RectConfig `yaml:"elements" toml:"elements"`
}

// Layout converts to the viewport's document description.
func (l LayoutConfig) Layout() viewport.Layout {
	out := viewport.Layout{
		DocumentHeight: l.DocumentHeight,
		ReferenceWidth: l.ReferenceWidth,
		Elements:       make(map[string]common.Rect, len(l.Elements)),
	}
	for name, r := range l.Elements {
		out.Elements[name] = r.Rect()
	}
	return out
}

// Default returns the production configuration.
//
// Returns:
//   - *Config: a fully populated configuration
func Default() *Config {
	p := device.DefaultProfile()
	return &Config{
		Device: DeviceConfig{
			Breakpoint: p.Breakpoint,
			Desktop:    tierConfigFrom(p.Desktop),
			Mobile:     tierConfigFrom(p.Mobile),
		},
		Camera: CameraConfig{Fov: 60, Near: 0.1, Far: 100, PlaneZ: 0},
		Timeline: TimelineConfig{
			Duration: 4,
			Scrub:    1,
			Phases: []PhaseConfig{
				{Name: "garage-approach", Start: 1, End: 3, Position: &Vec3{4, -28, 6}, Rotation: &Vec3{-0.2, 0.5, 0}, Easing: "power1.out"},
				{Name: "showcase", Start: 3, End: 4, Position: &Vec3{0, -28.5, 7}, Rotation: &Vec3{0, 0, 0}, Easing: "power1.out"},
			},
		},
		Loading: LoadingConfig{FallbackSeconds: 1, Workers: 4, QueueSize: 64, AssetRoot: "."},
		Character: CharacterConfig{
			Model:               "head.glb",
			HeroDesktop:         Vec3{1.5, 0, 0},
			HeroMobile:          Vec3{0, 0.5, 0},
			Anchor:              "profile-card-target",
			Section:             "about",
			AnchorOffsetDesktop: Vec3{-0.3, 1.0, 0},
			AnchorOffsetMobile:  Vec3{0, 0.5, 0},
			CenterOnMobile:      true,
			HideOffset:          500,
			FinalScale:          0.85,
			ExtraYaw:            0.5,
			ModelScaleDesktop:   10,
			ModelScaleMobile:    6,
			ModelOffsetY:        -8,
			Idle: IdleConfig{
				BobAmplitude: 0.05, BobFrequency: 0.8,
				SwayAmplitude: 0.3, SwayFrequency: 0.2,
				TiltAmplitude: 0.05, TiltFrequency: 0.5,
			},
			Halo: ParticleConfig{Count: 200, HalfExtent: Vec3{2.5, 0, 2.5}, MinY: -1, MaxY: 2.5, Speed: 0.06, Seed: 7},
			Mask: ParticleConfig{Count: 600, HalfExtent: Vec3{7.5, 0, 7.5}, MinY: -13, MaxY: -3, Speed: 0.3, Seed: 11},
		},
		Showcase: ShowcaseConfig{
			Model:             "car.glb",
			Region:            "showcase",
			Position:          Vec3{0, -30, 0},
			ThresholdY:        -20,
			DragSensitivity:   0.005,
			ModelScaleDesktop: 0.8,
			ModelScaleMobile:  0.45,
			PlaceholderSpin:   0.5,
			PlaceholderWobble: 0.1,
		},
		Background: ParticleConfig{Count: 0, HalfExtent: Vec3{50, 0, 30}, MinY: -60, MaxY: 20, Speed: 0.9, Seed: 1},
		Environment: EnvironmentConfig{
			Background:       0x000000,
			FogDensity:       0.02,
			AmbientIntensity: 0.1,
			EnvironmentMap:   true,
		},
		Layout: LayoutConfig{
			DocumentHeight: 4320,
			Elements: map[string]RectConfig{
				"hero":                {Left: 0, Top: 0, Width: 1920, Height: 1080},
				"about":               {Left: 0, Top: 1080, Width: 1920, Height: 1080},
				"profile-card-target": {Left: 420, Top: 1280, Width: 320, Height: 320},
				"showcase":            {Left: 0, Top: 3240, Width: 1920, Height: 1080},
			},
		},
	}
}

// Load reads a config file over the defaults. The decoder is chosen by extension:
// .yaml/.yml use YAML, .toml uses TOML.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - *Config: the merged configuration
//   - error: error if the file cannot be read, decoded or validated
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Decode(data, filepath.Ext(path))
}

// Decode parses config data in the format named by ext over the defaults.
//
// Parameters:
//   - data: raw file contents
//   - ext: the file extension including the dot
//
// Returns:
//   - *Config: the merged configuration
//   - error: error if decoding or validation fails
func Decode(data []byte, ext string) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode yaml config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode toml config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that would break the render loop.
//
// Returns:
//   - error: every problem found, joined; nil when valid
func (c *Config) Validate() error {
	var errs []error
	if c.Device.Breakpoint <= 0 {
		errs = append(errs, fmt.Errorf("device.breakpoint must be positive, got %v", c.Device.Breakpoint))
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov must be in (0, 180), got %v", c.Camera.Fov))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera near/far invalid: %v/%v", c.Camera.Near, c.Camera.Far))
	}
	if c.Loading.FallbackSeconds < 0 {
		errs = append(errs, fmt.Errorf("loading.fallback_seconds must not be negative"))
	}
	for i, p := range c.Timeline.Phases {
		if p.End < p.Start {
			errs = append(errs, fmt.Errorf("timeline.phases[%d] %q ends before it starts", i, p.Name))
		}
	}
	for _, pc := range []struct {
		name string
		p    ParticleConfig
	}{{"background", c.Background}, {"character.halo", c.Character.Halo}, {"character.mask", c.Character.Mask}} {
		if pc.p.MaxY <= pc.p.MinY {
			errs = append(errs, fmt.Errorf("%s: max_y must exceed min_y", pc.name))
		}
	}
	return errors.Join(errs...)
}

// Profile converts the device section into a device.Profile.
func (c *Config) Profile() device.Profile {
	return device.Profile{
		Breakpoint: c.Device.Breakpoint,
		Desktop:    c.Device.Desktop.settings(device.TierDesktop),
		Mobile:     c.Device.Mobile.settings(device.TierMobile),
	}
}

// AssetFS returns the file system model names resolve against.
func (c *Config) AssetFS() fs.FS {
	return os.DirFS(common.Coalesce(c.Loading.AssetRoot, "."))
}

func (t TierConfig) settings(tier device.Tier) device.Settings {
	return device.Settings{
		Tier:                tier,
		Antialias:           t.Antialias,
		Shadows:             t.Shadows,
		PixelRatioCap:       t.PixelRatioCap,
		ParticleCount:       t.ParticleCount,
		HeavyActors:         t.HeavyActors,
		CameraZ:             t.CameraZ,
		ToneMappingExposure: t.ToneMappingExposure,
	}
}

func tierConfigFrom(s device.Settings) TierConfig {
	return TierConfig{
		Antialias:           s.Antialias,
		Shadows:             s.Shadows,
		PixelRatioCap:       s.PixelRatioCap,
		ParticleCount:       s.ParticleCount,
		HeavyActors:         s.HeavyActors,
		CameraZ:             s.CameraZ,
		ToneMappingExposure: s.ToneMappingExposure,
	}
}
