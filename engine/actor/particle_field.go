package actor

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/config"
	"github.com/Carmen-Shannon/oxy-scroll/engine/device"
	"github.com/Carmen-Shannon/oxy-scroll/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ParticleState is the whole mutable state of a drifting field: how far every particle has
// risen since its base layout, kept inside [0, MaxY-MinY).
type ParticleState struct {
	Offset float32
}

// Advance returns the state dt seconds later. Particles rise at cfg.Speed and wrap within
// [MinY, MaxY), so the offset wraps modulo the span.
//
// Parameters:
//   - state: the current state
//   - dt: elapsed seconds; negative values are treated as zero
//   - cfg: the field description
//
// Returns:
//   - ParticleState: the advanced state
func Advance(state ParticleState, dt float32, cfg config.ParticleConfig) ParticleState {
	span := cfg.MaxY - cfg.MinY
	if span <= 0 || dt <= 0 {
		return state
	}
	return ParticleState{Offset: common.Wrap(state.Offset+cfg.Speed*dt, 0, span)}
}

// Layout generates the base particle positions. The same seed and count always produce the
// same layout.
//
// Parameters:
//   - cfg: the field description
//   - count: the number of particles
//
// Returns:
//   - []mgl32.Vec3: the base positions
func Layout(cfg config.ParticleConfig, count int) []mgl32.Vec3 {
	if count <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	span := cfg.MaxY - cfg.MinY
	hx, hz := cfg.HalfExtent[0], cfg.HalfExtent[2]

	out := make([]mgl32.Vec3, count)
	for i := range out {
		out[i] = mgl32.Vec3{
			(rng.Float32()*2 - 1) * hx,
			cfg.MinY + rng.Float32()*span,
			(rng.Float32()*2 - 1) * hz,
		}
	}
	return out
}

// ParticleField is the ambient actor: a point cloud that drifts upward forever.
type ParticleField struct {
	name       string
	cfg        config.ParticleConfig
	followTier bool
	base       []mgl32.Vec3
	state      ParticleState
	obj        game_object.GameObject
}

var (
	_ Actor     = &ParticleField{}
	_ TierAware = &ParticleField{}
)

// NewParticleField creates a drifting field. A cfg.Count of zero makes the count follow
// the device tier's ParticleCount, starting from count.
//
// Parameters:
//   - name: the actor name
//   - cfg: the field description
//   - count: the initial particle count when cfg.Count is zero
//
// Returns:
//   - *ParticleField: the field
func NewParticleField(name string, cfg config.ParticleConfig, count int) *ParticleField {
	p := &ParticleField{
		name:       name,
		cfg:        cfg,
		followTier: cfg.Count == 0,
	}
	if !p.followTier {
		count = cfg.Count
	}
	radius := (mgl32.Vec3{cfg.HalfExtent[0], math32.Max(math32.Abs(cfg.MinY), math32.Abs(cfg.MaxY)), cfg.HalfExtent[2]}).Len()
	p.obj = game_object.NewGameObject(
		game_object.WithName(name),
		game_object.WithPlaceholder(model.NewProcedural(name, radius)),
	)
	p.base = Layout(cfg, count)
	return p
}

func (p *ParticleField) Name() string {
	return p.name
}

func (p *ParticleField) Objects() []game_object.GameObject {
	return []game_object.GameObject{p.obj}
}

func (p *ParticleField) Heavy() bool {
	return false
}

func (p *ParticleField) Update(f Frame) {
	p.state = Advance(p.state, f.Delta, p.cfg)
}

func (p *ParticleField) ApplyTier(s device.Settings) {
	if p.followTier && s.ParticleCount != len(p.base) {
		p.base = Layout(p.cfg, s.ParticleCount)
	}
}

// Object returns the field's GameObject.
func (p *ParticleField) Object() game_object.GameObject {
	return p.obj
}

// Count returns the number of particles.
func (p *ParticleField) Count() int {
	return len(p.base)
}

// State returns the current drift state.
func (p *ParticleField) State() ParticleState {
	return p.state
}

// Positions writes the current particle positions, relative to the field's object, into dst
// and returns it. dst is grown when too small.
func (p *ParticleField) Positions(dst []mgl32.Vec3) []mgl32.Vec3 {
	if cap(dst) < len(p.base) {
		dst = make([]mgl32.Vec3, len(p.base))
	}
	dst = dst[:len(p.base)]
	for i, b := range p.base {
		dst[i] = mgl32.Vec3{b.X(), common.Wrap(b.Y()+p.state.Offset, p.cfg.MinY, p.cfg.MaxY), b.Z()}
	}
	return dst
}
