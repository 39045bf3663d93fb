package device

// Tier is the coarse device capability class chosen from the viewport width.
type Tier int

const (
	// TierMobile is a narrow viewport: reduced quality, fewer actors.
	TierMobile Tier = iota
	// TierDesktop is a wide viewport: full quality and every actor.
	TierDesktop
)

// DefaultBreakpoint is the viewport width, in CSS pixels, at or above which a device is treated as desktop.
const DefaultBreakpoint float32 = 768

func (t Tier) String() string {
	switch t {
	case TierMobile:
		return "mobile"
	case TierDesktop:
		return "desktop"
	default:
		return "unknown"
	}
}

// Classify maps a viewport width to a Tier. It is a pure function of its inputs.
// A non-positive breakpoint falls back to DefaultBreakpoint.
//
// Parameters:
//   - width: viewport width in CSS pixels
//   - breakpoint: the mobile/desktop threshold
//
// Returns:
//   - Tier: TierMobile when width < breakpoint, TierDesktop otherwise
func Classify(width, breakpoint float32) Tier {
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	if width < breakpoint {
		return TierMobile
	}
	return TierDesktop
}

// Settings are the quality toggles applied to the renderer and actors for one Tier.
type Settings struct {
	// Tier is the class these settings belong to.
	Tier Tier
	// Antialias enables multisampling.
	Antialias bool
	// Shadows enables shadow maps.
	Shadows bool
	// PixelRatioCap is the upper bound applied to the device pixel ratio.
	PixelRatioCap float32
	// ParticleCount is the number of background particles.
	ParticleCount int
	// HeavyActors enables the anchored character and its particle layers.
	HeavyActors bool
	// CameraZ is the camera's resting distance from the projection plane.
	CameraZ float32
	// ToneMappingExposure scales scene exposure.
	ToneMappingExposure float32
}

// EffectivePixelRatio caps the device pixel ratio at PixelRatioCap. A non-positive ratio is treated as 1.
//
// Parameters:
//   - dpr: the reported device pixel ratio
//
// Returns:
//   - float32: the pixel ratio the renderer should use
func (s Settings) EffectivePixelRatio(dpr float32) float32 {
	if dpr <= 0 {
		dpr = 1
	}
	if s.PixelRatioCap > 0 && dpr > s.PixelRatioCap {
		return s.PixelRatioCap
	}
	return dpr
}

// Profile holds the Settings for both tiers plus the breakpoint that selects between them.
type Profile struct {
	Breakpoint float32
	Desktop    Settings
	Mobile     Settings
}

// DefaultProfile returns the production quality profile.
//
// Returns:
//   - Profile: desktop and mobile settings with the default breakpoint
func DefaultProfile() Profile {
	return Profile{
		Breakpoint: DefaultBreakpoint,
		Desktop: Settings{
			Tier:                TierDesktop,
			Antialias:           true,
			Shadows:             true,
			PixelRatioCap:       1.5,
			ParticleCount:       18000,
			HeavyActors:         true,
			CameraZ:             5,
			ToneMappingExposure: 1.2,
		},
		Mobile: Settings{
			Tier:                TierMobile,
			Antialias:           false,
			Shadows:             false,
			PixelRatioCap:       1,
			ParticleCount:       6000,
			HeavyActors:         false,
			CameraZ:             8,
			ToneMappingExposure: 1.2,
		},
	}
}

// Classify returns the Tier for width under this profile's breakpoint.
func (p Profile) Classify(width float32) Tier {
	return Classify(width, p.Breakpoint)
}

// Settings returns the Settings for the tier that width classifies into.
//
// Parameters:
//   - width: viewport width in CSS pixels
//
// Returns:
//   - Settings: the selected tier's settings
func (p Profile) Settings(width float32) Settings {
	if p.Classify(width) == TierMobile {
		return p.Mobile
	}
	return p.Desktop
}
