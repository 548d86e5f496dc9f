package floord

import (
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/unixpickle/model3d/model3d"
)

type MeshFormat string

const (
	FormatGLB MeshFormat = "glb"
	FormatSTL MeshFormat = "stl"
)

// FormatForPath picks a mesh format from a file extension, defaulting to
// FormatGLB.
func FormatForPath(path string) MeshFormat {
	if strings.ToLower(filepath.Ext(path)) == ".stl" {
		return FormatSTL
	}
	return FormatGLB
}

// WriteMesh encodes a mesh in the given format.
func WriteMesh(w io.Writer, m *Mesh, format MeshFormat) error {
	switch format {
	case FormatSTL:
		return WriteSTL(w, m)
	case FormatGLB, "":
		return WriteGLB(w, m)
	default:
		return errors.Wrapf(ErrExport, "unknown mesh format %q", format)
	}
}

// WriteGLB encodes a mesh as a binary glTF asset containing a single
// primitive with positions and indices.
//
// The mesh's Z axis is mapped to the glTF up axis (Y).
func WriteGLB(w io.Writer, m *Mesh) error {
	if m.Empty() {
		return errors.Wrap(ErrEmptyResult, "write GLB")
	}
	positions := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = [3]float32{float32(v.X), float32(v.Z), float32(-v.Y)}
	}
	indices := make([]uint32, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		indices = append(indices, uint32(f[0]), uint32(f[1]), uint32(f[2]))
	}

	doc := gltf.NewDocument()
	positionAccessor := modeler.WritePosition(doc, positions)
	indicesAccessor := modeler.WriteIndices(doc, indices)
	doc.Meshes = []*gltf.Mesh{{
		Name: "floorplan",
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(indicesAccessor),
			Attributes: map[string]uint32{
				gltf.POSITION: positionAccessor,
			},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "floorplan", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(ErrExport, "write GLB: "+err.Error())
	}
	return nil
}

// WriteSTL encodes a mesh as a binary STL file.
func WriteSTL(w io.Writer, m *Mesh) error {
	if m.Empty() {
		return errors.Wrap(ErrEmptyResult, "write STL")
	}
	if err := model3d.WriteSTL(w, m.TriangleSlice()); err != nil {
		return errors.Wrap(ErrExport, "write STL: "+err.Error())
	}
	return nil
}

// WriteMaskPNG encodes a mask as an 8-bit grayscale PNG.
func WriteMaskPNG(w io.Writer, m *Mask) error {
	if err := png.Encode(w, GrayImage(m)); err != nil {
		return errors.Wrap(ErrExport, "write mask PNG: "+err.Error())
	}
	return nil
}
