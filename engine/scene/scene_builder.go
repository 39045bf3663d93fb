package scene

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-scroll/engine/actor"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithEnvironment sets the scene environment.
//
// Parameters:
//   - env: the environment
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithEnvironment(env Environment) SceneBuilderOption {
	return func(s *scene) {
		s.env = env
	}
}

// WithActors adds initial actors to the scene, attached. Duplicate names panic.
//
// Parameters:
//   - actors: the actors to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActors(actors ...actor.Actor) SceneBuilderOption {
	return func(s *scene) {
		for _, a := range actors {
			if err := s.add(a); err != nil {
				panic(err)
			}
		}
	}
}

// WithLogger sets the logger used to report failing actors.
//
// Parameters:
//   - logger: the structured logger
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}
