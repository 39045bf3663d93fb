package scene

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/actor"
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/config"
	"github.com/Carmen-Shannon/oxy-scroll/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scroll/engine/light"
)

// Environment is the scene-wide look: clear color, exponential fog, ambient light level,
// and whether a generated environment map lights reflective materials.
type Environment struct {
	Background       common.Color
	FogDensity       float32
	AmbientIntensity float32
	EnvironmentMap   bool
}

// EnvironmentFromConfig converts the environment config section.
//
// Parameters:
//   - cfg: the environment config
//
// Returns:
//   - Environment: the scene environment
func EnvironmentFromConfig(cfg config.EnvironmentConfig) Environment {
	return Environment{
		Background:       common.ColorFromHex(cfg.Background),
		FogDensity:       cfg.FogDensity,
		AmbientIntensity: cfg.AmbientIntensity,
		EnvironmentMap:   cfg.EnvironmentMap,
	}
}

// entry is one registered actor and whether its objects are in the scene graph.
type entry struct {
	actor    actor.Actor
	attached bool
}

type scene struct {
	mu     *sync.RWMutex
	logger *slog.Logger

	name   string
	active bool
	cam    camera.Camera
	env    Environment

	entries  []*entry
	byName   map[string]*entry
	registry map[uint64]game_object.GameObject
	nextID   uint64
}

// Scene owns the camera, the environment and an ordered set of actors. Actors can be detached
// from the scene graph (their objects stop being drawn or compiled) and re-attached without losing
// state. Update and the renderer only see attached actors.
type Scene interface {
	// Name returns the scene's identifier.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// Active reports whether the scene is being presented.
	//
	// Returns:
	//   - bool: true when active
	Active() bool

	// SetActive marks the scene as presented or not.
	//
	// Parameters:
	//   - active: the new state
	SetActive(active bool)

	// Camera returns the scene camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Environment returns the scene environment.
	//
	// Returns:
	//   - Environment: the environment
	Environment() Environment

	// SetEnvironment replaces the scene environment.
	//
	// Parameters:
	//   - env: the new environment
	SetEnvironment(env Environment)

	// Add registers an actor and attaches it. Objects without IDs are assigned new ones.
	// Adding a second actor with the same name is an error.
	//
	// Parameters:
	//   - a: the actor to add
	//
	// Returns:
	//   - error: error if the name is taken
	Add(a actor.Actor) error

	// Actor returns a registered actor by name, or nil.
	//
	// Parameters:
	//   - name: the actor name
	//
	// Returns:
	//   - actor.Actor: the actor or nil
	Actor(name string) actor.Actor

	// Actors returns every registered actor in insertion order.
	//
	// Returns:
	//   - []actor.Actor: the actors
	Actors() []actor.Actor

	// IsAttached reports whether the named actor is in the scene graph.
	//
	// Parameters:
	//   - name: the actor name
	//
	// Returns:
	//   - bool: true when registered and attached
	IsAttached(name string) bool

	// Detach removes the named actor's objects from the scene graph.
	//
	// Parameters:
	//   - name: the actor name
	//
	// Returns:
	//   - bool: true if the actor was attached
	Detach(name string) bool

	// Attach returns the named actor's objects to the scene graph.
	//
	// Parameters:
	//   - name: the actor name
	//
	// Returns:
	//   - bool: true if the actor was detached
	Attach(name string) bool

	// Objects returns the objects of every attached actor, in actor order.
	//
	// Returns:
	//   - []game_object.GameObject: attached objects
	Objects() []game_object.GameObject

	// Lights returns the lights of every attached actor that carries a rig.
	//
	// Returns:
	//   - []light.Light: the lights, enabled or not
	Lights() []light.Light

	// Get returns a registered object by ID, attached or not.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Count returns the number of attached objects.
	//
	// Returns:
	//   - int: attached object count
	Count() int

	// Update runs every attached actor's Update in order. A panicking actor is logged and
	// skipped; the remaining actors still update.
	//
	// Parameters:
	//   - f: the frame input
	//
	// Returns:
	//   - []error: one error per actor that panicked
	Update(f actor.Frame) []error

	// Bounds returns a sphere enclosing every attached object accepted by keep.
	// A nil keep accepts every object.
	//
	// Parameters:
	//   - keep: object filter
	//
	// Returns:
	//   - common.Sphere: the enclosing sphere
	//   - bool: false when no object matched
	Bounds(keep func(game_object.GameObject) bool) (common.Sphere, bool)

	// Clear removes every actor.
	Clear()
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene around a camera. The camera is required and NewScene panics
// if it is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:       &sync.RWMutex{},
		logger:   slog.Default(),
		name:     name,
		cam:      cam,
		env:      EnvironmentFromConfig(config.Default().Environment),
		byName:   make(map[string]*entry),
		registry: make(map[uint64]game_object.GameObject),
		nextID:   1,
	}

	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Environment() Environment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.env
}

func (s *scene) SetEnvironment(env Environment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.env = env
}

func (s *scene) Add(a actor.Actor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(a)
}

// add registers an actor. Caller must hold the mutex.
func (s *scene) add(a actor.Actor) error {
	if a == nil {
		panic("scene: cannot Add a nil Actor")
	}
	if _, exists := s.byName[a.Name()]; exists {
		return fmt.Errorf("scene %q: actor %q already added", s.name, a.Name())
	}

	e := &entry{actor: a, attached: true}
	s.entries = append(s.entries, e)
	s.byName[a.Name()] = e
	for _, obj := range a.Objects() {
		if obj.ID() == 0 {
			obj.SetID(s.nextID)
			s.nextID++
		}
		s.registry[obj.ID()] = obj
		obj.SetAttached(true)
	}
	return nil
}

func (s *scene) Actor(name string) actor.Actor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.byName[name]; ok {
		return e.actor
	}
	return nil
}

func (s *scene) Actors() []actor.Actor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]actor.Actor, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.actor
	}
	return out
}

func (s *scene) IsAttached(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byName[name]
	return ok && e.attached
}

func (s *scene) Detach(name string) bool {
	return s.setAttached(name, false)
}

func (s *scene) Attach(name string) bool {
	return s.setAttached(name, true)
}

func (s *scene) setAttached(name string, attached bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byName[name]
	if !ok || e.attached == attached {
		return false
	}
	e.attached = attached
	for _, obj := range e.actor.Objects() {
		obj.SetAttached(attached)
	}
	return true
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []game_object.GameObject
	for _, e := range s.entries {
		if e.attached {
			out = append(out, e.actor.Objects()...)
		}
	}
	return out
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []light.Light
	for _, e := range s.entries {
		if lit, ok := e.actor.(actor.Lit); ok && e.attached {
			out = append(out, lit.Lights()...)
		}
	}
	return out
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Count() int {
	return len(s.Objects())
}

func (s *scene) Update(f actor.Frame) []error {
	s.mu.RLock()
	attached := make([]actor.Actor, 0, len(s.entries))
	for _, e := range s.entries {
		if e.attached {
			attached = append(attached, e.actor)
		}
	}
	s.mu.RUnlock()

	var errs []error
	for _, a := range attached {
		if err := s.updateActor(a, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// updateActor runs one actor update, converting a panic into an error.
func (s *scene) updateActor(a actor.Actor, f actor.Frame) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("actor %q panicked: %v", a.Name(), r)
			s.logger.Error("actor update failed", "actor", a.Name(), "panic", r)
		}
	}()
	a.Update(f)
	return nil
}

func (s *scene) Bounds(keep func(game_object.GameObject) bool) (common.Sphere, bool) {
	var out common.Sphere
	found := false
	for _, obj := range s.Objects() {
		if keep != nil && !keep(obj) {
			continue
		}
		sphere := common.Sphere{Center: obj.WorldCenter(), Radius: obj.WorldRadius()}
		if !found {
			out, found = sphere, true
			continue
		}
		out = out.Merge(sphere)
	}
	return out, found
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		for _, obj := range e.actor.Objects() {
			obj.SetAttached(false)
		}
	}
	s.entries = nil
	s.byName = make(map[string]*entry)
	s.registry = make(map[uint64]game_object.GameObject)
}
