package floord

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// A Mesh is an indexed triangle mesh.
//
// Unlike model3d.Mesh, vertices are never merged, so concatenating meshes
// preserves every vertex of every part.
type Mesh struct {
	Vertices []model3d.Coord3D
	Faces    [][3]int
}

func (m *Mesh) NumFaces() int {
	return len(m.Faces)
}

func (m *Mesh) Empty() bool {
	return len(m.Faces) == 0
}

// Bounds computes the bounding box of the vertices.
//
// For an empty mesh, both corners are the origin.
func (m *Mesh) Bounds() (min, max model3d.Coord3D) {
	if len(m.Vertices) == 0 {
		return
	}
	min = model3d.XYZ(math.Inf(1), math.Inf(1), math.Inf(1))
	max = min.Scale(-1)
	for _, v := range m.Vertices {
		min = min.Min(v)
		max = max.Max(v)
	}
	return
}

// Triangle returns the coordinates of face i.
func (m *Mesh) Triangle(i int) *model3d.Triangle {
	f := m.Faces[i]
	return &model3d.Triangle{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
}

func (m *Mesh) TriangleSlice() []*model3d.Triangle {
	res := make([]*model3d.Triangle, len(m.Faces))
	for i := range m.Faces {
		res[i] = m.Triangle(i)
	}
	return res
}

// Model3D converts m into a model3d.Mesh, which merges vertices by position.
func (m *Mesh) Model3D() *model3d.Mesh {
	return model3d.NewMeshTriangles(m.TriangleSlice())
}

// Concat combines meshes into one mesh by appending vertices and offsetting
// face indices. Nil meshes are ignored.
func Concat(meshes ...*Mesh) *Mesh {
	var numVerts, numFaces int
	for _, m := range meshes {
		if m != nil {
			numVerts += len(m.Vertices)
			numFaces += len(m.Faces)
		}
	}
	res := &Mesh{
		Vertices: make([]model3d.Coord3D, 0, numVerts),
		Faces:    make([][3]int, 0, numFaces),
	}
	for _, m := range meshes {
		if m == nil {
			continue
		}
		offset := len(res.Vertices)
		res.Vertices = append(res.Vertices, m.Vertices...)
		for _, f := range m.Faces {
			res.Faces = append(res.Faces, [3]int{f[0] + offset, f[1] + offset, f[2] + offset})
		}
	}
	return res
}
