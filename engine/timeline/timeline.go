// Package timeline turns normalized scroll progress into a camera pose through an ordered list of phases.
package timeline

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/config"
	"github.com/go-gl/mathgl/mgl32"
)

// Phase is one camera tween in timeline units. A nil target leaves that channel alone.
type Phase struct {
	Name     string
	Start    float32
	End      float32
	Position *mgl32.Vec3
	Rotation *mgl32.Vec3
	Easing   Easing
}

// Weight returns how much of the phase is applied at timeline time t: 0 before Start, 1 at or
// after End, eased in between. Zero-length phases step at Start.
func (p Phase) Weight(t float32) float32 {
	switch {
	case t < p.Start:
		return 0
	case t >= p.End:
		return 1
	}
	ease := p.Easing
	if ease == nil {
		ease = Power1Out
	}
	return ease((t - p.Start) / (p.End - p.Start))
}

// Timeline is an immutable, start-ordered set of phases.
type Timeline struct {
	phases   []Phase
	duration float32
}

// NewTimeline creates a timeline. Phases are stably sorted by Start. A non-positive duration
// becomes the latest phase end.
//
// Parameters:
//   - duration: the timeline length scroll progress maps onto
//   - phases: the camera phases
//
// Returns:
//   - *Timeline: the timeline
func NewTimeline(duration float32, phases ...Phase) *Timeline {
	sorted := make([]Phase, len(phases))
	copy(sorted, phases)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	if duration <= 0 {
		for _, p := range sorted {
			duration = max(duration, p.End)
		}
	}
	return &Timeline{phases: sorted, duration: duration}
}

// FromConfig builds a timeline from its config section.
//
// Parameters:
//   - cfg: the timeline config
//
// Returns:
//   - *Timeline: the timeline
//   - error: error if a phase names an unknown easing or ends before it starts
func FromConfig(cfg config.TimelineConfig) (*Timeline, error) {
	phases := make([]Phase, 0, len(cfg.Phases))
	for i, pc := range cfg.Phases {
		ease, ok := EasingByName(pc.Easing)
		if !ok {
			return nil, fmt.Errorf("timeline phase %d %q: unknown easing %q", i, pc.Name, pc.Easing)
		}
		if pc.End < pc.Start {
			return nil, fmt.Errorf("timeline phase %d %q: end %v before start %v", i, pc.Name, pc.End, pc.Start)
		}
		p := Phase{Name: pc.Name, Start: pc.Start, End: pc.End, Easing: ease}
		if pc.Position != nil {
			v := pc.Position.Vec()
			p.Position = &v
		}
		if pc.Rotation != nil {
			v := pc.Rotation.Vec()
			p.Rotation = &v
		}
		phases = append(phases, p)
	}
	return NewTimeline(cfg.Duration, phases...), nil
}

// Duration returns the timeline length in timeline units.
func (t *Timeline) Duration() float32 {
	return t.duration
}

// Phases returns a copy of the ordered phases.
func (t *Timeline) Phases() []Phase {
	out := make([]Phase, len(t.phases))
	copy(out, t.phases)
	return out
}

// Time maps progress in [0, 1] onto timeline time. Progress is clamped first.
func (t *Timeline) Time(progress float32) float32 {
	return common.Saturate(progress) * t.duration
}

// Pose computes the camera pose at progress p. Each phase contributes (target - from) * weight,
// where from is the channel value once every earlier phase on that channel has fully applied,
// so a phase picks up exactly where the previous one left off.
//
// Parameters:
//   - p: scroll progress; clamped to [0, 1]
//   - base: the pose before any phase applies
//
// Returns:
//   - camera.Pose: the resulting pose
func (t *Timeline) Pose(p float32, base camera.Pose) camera.Pose {
	now := t.Time(p)
	out := base
	fromPos, fromRot := base.Position, base.Rotation

	for _, ph := range t.phases {
		w := ph.Weight(now)
		if ph.Position != nil {
			out.Position = out.Position.Add(ph.Position.Sub(fromPos).Mul(w))
			fromPos = *ph.Position
		}
		if ph.Rotation != nil {
			out.Rotation = out.Rotation.Add(ph.Rotation.Sub(fromRot).Mul(w))
			fromRot = *ph.Rotation
		}
	}
	return out
}
