package render

import "sync"

// Scene holds the lights and objects an engine draws.
type Scene interface {
	// AddLight appends a light.
	AddLight(light Light)

	// AddObject appends an object.
	AddObject(obj Object)

	// Lights returns a copy of the scene's lights.
	Lights() []Light

	// Objects returns a copy of the scene's objects.
	Objects() []Object

	// Clear removes every light and object.
	Clear()
}

type scene struct {
	mu      *sync.Mutex
	lights  []Light
	objects []Object
}

var _ Scene = &scene{}

// NewScene returns an empty Scene usable by any Engine implementation.
func NewScene() Scene {
	return &scene{mu: &sync.Mutex{}}
}

func (s *scene) AddLight(light Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, light)
}

func (s *scene) AddObject(obj Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = append(s.objects, obj)
}

func (s *scene) Lights() []Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) Objects() []Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Object, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = nil
	s.objects = nil
}
