package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/render"
)

// sphereObject is the render.Object handed out by CreateTexturedSphere. It holds the CPU mesh,
// the current rotation and a texture waiting to be uploaded on the render thread.
type sphereObject struct {
	mu *sync.Mutex

	mesh   common.SphereMesh
	radius float64
	source string

	rotX, rotY float64

	pending   *common.TextureStagingData
	loadErr   error
	stopWatch func()
	closed    bool
}

var _ render.Object = &sphereObject{}

func newSphereObject(radius float64, segments int, source string) *sphereObject {
	return &sphereObject{
		mu:     &sync.Mutex{},
		mesh:   common.NewUVSphere(float32(radius), segments),
		radius: radius,
		source: source,
	}
}

func (s *sphereObject) SetRotation(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rotX, s.rotY = x, y
}

func (s *sphereObject) Rotation() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rotX, s.rotY
}

// Mesh returns the sphere's vertex and index data.
func (s *sphereObject) Mesh() common.SphereMesh {
	return s.mesh
}

// Source returns the texture source the sphere was created with.
func (s *sphereObject) Source() string {
	return s.source
}

// LoadErr returns the last texture load error, if any.
func (s *sphereObject) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// setTexture queues tex for upload, replacing any texture not yet taken.
func (s *sphereObject) setTexture(tex common.TextureStagingData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = &tex
	s.loadErr = nil
}

func (s *sphereObject) setLoadErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// takeTexture returns the queued texture and clears it.
func (s *sphereObject) takeTexture() (common.TextureStagingData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return common.TextureStagingData{}, false
	}
	tex := *s.pending
	s.pending = nil
	return tex, true
}

func (s *sphereObject) setStopWatch(stop func()) {
	s.mu.Lock()
	closed := s.closed
	if !closed {
		s.stopWatch = stop
	}
	s.mu.Unlock()
	if closed && stop != nil {
		stop()
	}
}

// close stops watching the texture source and drops any queued texture. Safe to call repeatedly.
func (s *sphereObject) close() {
	s.mu.Lock()
	stop := s.stopWatch
	s.stopWatch = nil
	s.pending = nil
	s.closed = true
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
}
