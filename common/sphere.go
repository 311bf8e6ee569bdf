package common

import "math"

// SphereVertexStride is the number of float32 values per sphere vertex:
// position (3), normal (3), uv (2).
const SphereVertexStride = 8

// SphereMesh is an indexed UV sphere with interleaved position/normal/uv vertices.
type SphereMesh struct {
	Vertices []float32
	Indices  []uint32
}

// NewUVSphere builds a UV sphere centred on the origin. The mesh has segments+1 columns so the
// texture seam gets duplicated vertices with u=0 and u=1, and segments rows from pole to pole.
// Values below 3 are raised to 3.
//
// Parameters:
//   - radius: sphere radius in world units
//   - segments: number of longitudinal and latitudinal subdivisions
//
// Returns:
//   - SphereMesh: the generated mesh
func NewUVSphere(radius float32, segments int) SphereMesh {
	segments = max(segments, 3)
	rings := segments

	mesh := SphereMesh{
		Vertices: make([]float32, 0, (rings+1)*(segments+1)*SphereVertexStride),
		Indices:  make([]uint32, 0, rings*segments*6),
	}

	for ring := 0; ring <= rings; ring++ {
		theta := float64(ring) * math.Pi / float64(rings)
		sinTheta, cosTheta := math.Sincos(theta)

		for seg := 0; seg <= segments; seg++ {
			phi := float64(seg) * 2 * math.Pi / float64(segments)
			sinPhi, cosPhi := math.Sincos(phi)

			// u=0 starts on -X and runs towards +Z so equirectangular maps line up.
			x := float32(-cosPhi * sinTheta)
			y := float32(cosTheta)
			z := float32(sinPhi * sinTheta)

			mesh.Vertices = append(mesh.Vertices,
				x*radius, y*radius, z*radius,
				x, y, z,
				float32(seg)/float32(segments), float32(ring)/float32(rings),
			)
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments) + 1

			mesh.Indices = append(mesh.Indices, current, next, current+1)
			mesh.Indices = append(mesh.Indices, current+1, next, next+1)
		}
	}

	return mesh
}

// VertexCount returns the number of vertices in the mesh.
func (m SphereMesh) VertexCount() int {
	return len(m.Vertices) / SphereVertexStride
}
