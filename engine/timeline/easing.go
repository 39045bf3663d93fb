package timeline

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-scroll/common"
)

// Easing maps local phase progress in [0, 1] to an eased fraction with Easing(0) = 0 and Easing(1) = 1.
type Easing func(t float32) float32

// Linear applies no easing.
func Linear(t float32) float32 {
	return t
}

// Power1Out decelerates quadratically into the target.
func Power1Out(t float32) float32 {
	u := 1 - t
	return 1 - u*u
}

// EaseInOutCubic accelerates then decelerates.
func EaseInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Step holds the start value until the phase ends, then jumps.
func Step(t float32) float32 {
	if t < 1 {
		return 0
	}
	return 1
}

var easings = map[string]Easing{
	"":               Power1Out,
	"none":           Linear,
	"linear":         Linear,
	"power1.out":     Power1Out,
	"quad.out":       Power1Out,
	"power2.inout":   EaseInOutCubic,
	"cubic.inout":    EaseInOutCubic,
	"easeinoutcubic": EaseInOutCubic,
	"step":           Step,
	"steps(1)":       Step,
}

// EasingByName looks an easing up by name, case-insensitively. An empty name is Power1Out.
//
// Parameters:
//   - name: the easing name
//
// Returns:
//   - Easing: the easing, clamped to [0, 1] input
//   - bool: false if the name is unknown
func EasingByName(name string) (Easing, bool) {
	e, ok := easings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return clamped(e), true
}

func clamped(e Easing) Easing {
	return func(t float32) float32 {
		return e(common.Saturate(t))
	}
}
