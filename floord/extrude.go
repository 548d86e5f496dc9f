package floord

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// Extrude sweeps a polygon along the Z axis into a closed prism.
//
// The resulting mesh has one bottom and one top vertex per ring point, with
// the bottom at layer.VerticalShift. Faces are wound so that their normals
// point out of the prism.
func Extrude(p *Polygon, layer LayerConfig) (mesh *Mesh, err error) {
	points := p.Points()
	n := len(points)
	if n < 3 {
		return nil, errors.Errorf("extrude: polygon has only %d points", n)
	}
	if layer.Height <= 0 {
		return nil, errors.Errorf("extrude: invalid height %f", layer.Height)
	}

	defer func() {
		if r := recover(); r != nil {
			mesh = nil
			err = errors.Errorf("extrude: triangulation failed: %v", r)
		}
	}()
	caps := model2d.Triangulate(points)

	indices := make(map[model2d.Coord]int, n)
	for i, c := range points {
		indices[c] = i
	}

	bottom := layer.VerticalShift
	top := layer.VerticalShift + layer.Height
	mesh = &Mesh{
		Vertices: make([]model3d.Coord3D, 2*n, 2*n+len(caps)*6),
		Faces:    make([][3]int, 0, 2*n+2*len(caps)),
	}
	for i, c := range points {
		mesh.Vertices[i] = model3d.XYZ(c.X, c.Y, bottom)
		mesh.Vertices[i+n] = model3d.XYZ(c.X, c.Y, top)
	}
	vertexIndex := func(c model2d.Coord) int {
		if idx, ok := indices[c]; ok {
			return idx
		}
		// Triangulation should only reuse input points, but stay robust to
		// new ones by giving them their own vertices.
		idx := len(mesh.Vertices)
		indices[c] = idx
		mesh.Vertices = append(mesh.Vertices, model3d.XYZ(c.X, c.Y, bottom))
		mesh.Vertices = append(mesh.Vertices, model3d.XYZ(c.X, c.Y, top))
		return idx
	}
	topIndex := func(idx int) int {
		if idx < n {
			return idx + n
		}
		return idx + 1
	}

	for _, t := range caps {
		if triangleOrientation(t) < 0 {
			t[1], t[2] = t[2], t[1]
		}
		a, b, c := vertexIndex(t[0]), vertexIndex(t[1]), vertexIndex(t[2])
		mesh.Faces = append(mesh.Faces,
			[3]int{a, c, b},
			[3]int{topIndex(a), topIndex(b), topIndex(c)},
		)
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		mesh.Faces = append(mesh.Faces,
			[3]int{i, j, j + n},
			[3]int{i, j + n, i + n},
		)
	}
	return mesh, nil
}

func triangleOrientation(t [3]model2d.Coord) float64 {
	v1 := t[1].Sub(t[0])
	v2 := t[2].Sub(t[0])
	return v1.X*v2.Y - v1.Y*v2.X
}
