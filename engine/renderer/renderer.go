package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/logger"
	"github.com/Carmen-Shannon/oxy-globe/engine/render"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/bind_group_provider"
)

// globeRenderer is the render.Renderer returned by CreateRenderer. It owns one backend and the
// GPU resources of every sphere it has drawn.
type globeRenderer struct {
	mu *sync.Mutex

	backend wgpuRendererBackend
	source  SurfaceSource
	log     logger.Logger

	width, height    int
	offsetX, offsetY int

	frame   bind_group_provider.BindGroupProvider
	objects map[*sphereObject]bind_group_provider.BindGroupProvider

	disposed  bool
	onDispose func(r *globeRenderer, spheres []*sphereObject)
}

var (
	_ render.Renderer   = &globeRenderer{}
	_ render.Positioner = &globeRenderer{}
)

func newGlobeRenderer(backend wgpuRendererBackend, source SurfaceSource, log logger.Logger) *globeRenderer {
	return &globeRenderer{
		mu:      &sync.Mutex{},
		backend: backend,
		source:  source,
		log:     logger.OrNop(log),
		width:   source.Width(),
		height:  source.Height(),
		frame:   bind_group_provider.NewBindGroupProvider("Frame"),
		objects: make(map[*sphereObject]bind_group_provider.BindGroupProvider),
	}
}

func (r *globeRenderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = max(width, 0), max(height, 0)
}

func (r *globeRenderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *globeRenderer) SetOffset(x, y int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offsetX, r.offsetY = x, y
}

// Offset returns the top-left corner of the drawing rectangle on the surface.
func (r *globeRenderer) Offset() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.offsetX, r.offsetY
}

func (r *globeRenderer) Surface() any {
	return r.source
}

func (r *globeRenderer) Dispose() {
	r.mu.Lock()
	if r.disposed {
		r.mu.Unlock()
		return
	}
	r.disposed = true

	spheres := make([]*sphereObject, 0, len(r.objects))
	for so, p := range r.objects {
		p.Release()
		delete(r.objects, so)
		spheres = append(spheres, so)
	}
	r.frame.Release()
	r.backend.Release()
	onDispose := r.onDispose
	r.mu.Unlock()

	for _, so := range spheres {
		so.close()
	}
	if onDispose != nil {
		onDispose(r, spheres)
	}
}

// render draws every sphere in scene from cam into the renderer's rectangle.
func (r *globeRenderer) render(scene render.Scene, cam camera.Camera) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.disposed {
		return
	}

	if w, h := r.source.Width(), r.source.Height(); w > 0 && h > 0 {
		if sw, sh := r.backend.SurfaceSize(); sw != w || sh != h {
			if err := r.backend.ConfigureSurface(w, h); err != nil {
				r.log.Errorf("failed to reconfigure surface: %v", err)
				return
			}
		}
	}

	if r.frame.BindGroup() == nil {
		if err := r.backend.InitBindGroup(r.frame, frameGroup); err != nil {
			r.log.Errorf("failed to create frame bind group: %v", err)
			return
		}
	}

	cameraUniform := camera.NewGPUCameraUniform(cam)
	lightUniform := NewGPULightUniform(scene.Lights())
	writes := []bind_group_provider.BufferWrite{
		{Provider: r.frame, Binding: cameraBinding, Data: cameraUniform.Marshal()},
		{Provider: r.frame, Binding: lightsBinding, Data: lightUniform.Marshal()},
	}

	var draws []bind_group_provider.BindGroupProvider
	for _, obj := range scene.Objects() {
		so, ok := obj.(*sphereObject)
		if !ok {
			continue
		}
		p, err := r.prepare(so)
		if err != nil {
			r.log.Errorf("failed to prepare sphere: %v", err)
		}
		if p == nil {
			continue
		}
		rotX, rotY := so.Rotation()
		model := NewGPUModelUniform(rotX, rotY)
		writes = append(writes, bind_group_provider.BufferWrite{Provider: p, Binding: modelBinding, Data: model.Marshal()})
		draws = append(draws, p)
	}
	r.backend.WriteBuffers(writes)

	if err := r.backend.BeginFrame(); err != nil {
		// Outdated or lost surfaces recover after a reconfigure.
		r.log.Debugf("skipping frame: %v", err)
		if w, h := r.backend.SurfaceSize(); w > 0 && h > 0 {
			if err := r.backend.ConfigureSurface(w, h); err != nil {
				r.log.Errorf("failed to reconfigure surface: %v", err)
			}
		}
		return
	}

	rect := Rect{X: r.offsetX, Y: r.offsetY, Width: r.width, Height: r.height}
	for _, p := range draws {
		r.backend.DrawSphere(r.frame, p, rect)
	}
	r.backend.EndFrame()
	r.backend.Present()
}

// prepare creates a sphere's GPU resources on first use and uploads any texture that arrived
// since the last frame.
func (r *globeRenderer) prepare(so *sphereObject) (bind_group_provider.BindGroupProvider, error) {
	p, ok := r.objects[so]
	if !ok {
		p = bind_group_provider.NewBindGroupProvider(fmt.Sprintf("Sphere %d", len(r.objects)))
		mesh := so.Mesh()
		err := r.backend.InitMeshBuffers(p, common.SliceToBytes(mesh.Vertices), common.Uint32SliceToBytes(mesh.Indices), len(mesh.Indices))
		if err == nil {
			err = r.backend.InitSampler(p, samplerBinding)
		}
		if err == nil {
			err = r.backend.InitTextureView(p, textureBinding, whiteTexture())
		}
		if err == nil {
			err = r.backend.InitBindGroup(p, objectGroup)
		}
		if err != nil {
			p.Release()
			return nil, err
		}
		r.objects[so] = p
	}

	if tex, ok := so.takeTexture(); ok {
		if err := r.backend.InitTextureView(p, textureBinding, tex); err != nil {
			return p, fmt.Errorf("failed to upload texture %s: %w", so.Source(), err)
		}
		if err := r.backend.InitBindGroup(p, objectGroup); err != nil {
			return p, fmt.Errorf("failed to rebind texture %s: %w", so.Source(), err)
		}
		r.log.Debugf("uploaded texture %s (%dx%d)", so.Source(), tex.Width, tex.Height)
	}
	return p, nil
}
