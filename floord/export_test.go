package floord

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"testing"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/unixpickle/model3d/model3d"
)

func TestWriteGLB(t *testing.T) {
	mesh := testCubeMesh(t)
	var buf bytes.Buffer
	if err := WriteGLB(&buf, mesh); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	if len(data) < 12 || string(data[:4]) != "glTF" {
		t.Fatal("missing glTF magic")
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != 2 {
		t.Fatalf("expected version 2 but got %d", v)
	}
	if n := binary.LittleEndian.Uint32(data[8:12]); int(n) != len(data) {
		t.Fatalf("header length %d does not match data length %d", n, len(data))
	}

	var doc gltf.Document
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 1 {
		t.Fatal("expected a single primitive")
	}
	prim := doc.Meshes[0].Primitives[0]
	positions := doc.Accessors[prim.Attributes[gltf.POSITION]]
	if int(positions.Count) != len(mesh.Vertices) {
		t.Fatalf("expected %d positions but got %d", len(mesh.Vertices), positions.Count)
	}
	indices := doc.Accessors[*prim.Indices]
	if int(indices.Count) != 3*mesh.NumFaces() {
		t.Fatalf("expected %d indices but got %d", 3*mesh.NumFaces(), indices.Count)
	}
}

func TestWriteSTL(t *testing.T) {
	mesh := testCubeMesh(t)
	var buf bytes.Buffer
	if err := WriteSTL(&buf, mesh); err != nil {
		t.Fatal(err)
	}
	if expected := 84 + 50*mesh.NumFaces(); buf.Len() != expected {
		t.Fatalf("expected %d bytes but got %d", expected, buf.Len())
	}
	if n := binary.LittleEndian.Uint32(buf.Bytes()[80:84]); int(n) != mesh.NumFaces() {
		t.Fatalf("expected %d triangles but got %d", mesh.NumFaces(), n)
	}
}

func TestWriteMeshEmpty(t *testing.T) {
	for _, format := range []MeshFormat{FormatGLB, FormatSTL} {
		var buf bytes.Buffer
		err := WriteMesh(&buf, &Mesh{}, format)
		if !errors.Is(err, ErrEmptyResult) {
			t.Fatalf("%s: expected empty result error but got %v", format, err)
		}
		if buf.Len() != 0 {
			t.Fatalf("%s: nothing should be written", format)
		}
	}
}

func TestWriteMeshUnknownFormat(t *testing.T) {
	err := WriteMesh(&bytes.Buffer{}, testCubeMesh(t), "obj")
	if !errors.Is(err, ErrExport) {
		t.Fatalf("expected export error but got %v", err)
	}
}

func TestFormatForPath(t *testing.T) {
	if f := FormatForPath("out/model.STL"); f != FormatSTL {
		t.Errorf("unexpected format %s", f)
	}
	if f := FormatForPath("model.glb"); f != FormatGLB {
		t.Errorf("unexpected format %s", f)
	}
	if f := FormatForPath("model"); f != FormatGLB {
		t.Errorf("unexpected format %s", f)
	}
}

func TestWriteMaskPNG(t *testing.T) {
	mask := maskFromRows(
		"#..",
		".#.",
	)
	var buf bytes.Buffer
	if err := WriteMaskPNG(&buf, mask); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	gray := Grayscale(img)
	for i, v := range mask.Pix {
		if gray.Pix[i] != v {
			t.Fatalf("pixel %d: expected %d but got %d", i, v, gray.Pix[i])
		}
	}
}

func testCubeMesh(t *testing.T) *Mesh {
	ring := []float64{0, 0, 1, 0, 1, 1, 0, 1}
	polys, _ := BuildPolygons([]*Contour{testContour(true, ring...)}, RoleWall,
		PolygonConfig{}, nil)
	if len(polys) != 1 {
		t.Fatal("expected a polygon")
	}
	mesh, err := Extrude(polys[0], LayerConfig{Role: RoleWall, Height: 1, Enabled: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, max := mesh.Bounds(); max != model3d.XYZ(1, 1, 1) {
		t.Fatalf("unexpected max: %v", max)
	}
	return mesh
}
