package loaders

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

const quadPLY = `ply
format ascii 1.0
comment unit quad with a normal per vertex
element vertex 4
property float x
property float y
property float z
property float nx
property float ny
property float nz
element face 1
property list uchar int vertex_indices
element edge 1
property int vertex1
property int vertex2
end_header
0 0 0 0 0 1
1 0 0 0 0 1
1 1 0 0 0 1
0 1 0 0 0 1
4 0 1 2 3
0 2
`

// binaryQuadPLY encodes the same quad as quadPLY, with a leading uchar face
// flag and a trailing double vertex property
func binaryQuadPLY(t *testing.T, format string, order binary.ByteOrder) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("ply\r\nformat " + format + " 1.0\r\n")
	buf.WriteString("element vertex 4\nproperty float x\nproperty float y\nproperty float z\nproperty double quality\n")
	buf.WriteString("element face 1\nproperty uchar flags\nproperty list uchar uint vertex_indices\nend_header\n")

	write := func(value any) {
		if err := binary.Write(&buf, order, value); err != nil {
			t.Fatalf("binary.Write failed: %v", err)
		}
	}
	for _, v := range [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}} {
		write(v)
		write(float64(0.5))
	}
	write(uint8(7))
	write(uint8(4))
	write([4]uint32{0, 1, 2, 3})
	return buf.Bytes()
}

func checkQuad(t *testing.T, data *PLYData) {
	t.Helper()
	if len(data.Vertices) != 4 {
		t.Fatalf("Expected 4 vertices, got %d", len(data.Vertices))
	}
	if data.Vertices[2] != core.NewVec3(1, 1, 0) {
		t.Errorf("Vertex 2 = %v, want (1,1,0)", data.Vertices[2])
	}

	expected := []int{0, 1, 2, 0, 2, 3}
	if len(data.Faces) != len(expected) {
		t.Fatalf("Expected %d face indices, got %d", len(expected), len(data.Faces))
	}
	for i, index := range expected {
		if data.Faces[i] != index {
			t.Errorf("Faces[%d] = %d, want %d", i, data.Faces[i], index)
		}
	}
	if data.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", data.TriangleCount())
	}
}

func TestReadPLY_Formats(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"ascii", []byte(quadPLY)},
		{"binary little endian", binaryQuadPLY(t, "binary_little_endian", binary.LittleEndian)},
		{"binary big endian", binaryQuadPLY(t, "binary_big_endian", binary.BigEndian)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadPLY(bytes.NewReader(tt.input), "quad.ply")
			if err != nil {
				t.Fatalf("ReadPLY failed: %v", err)
			}
			checkQuad(t, data)
		})
	}
}

func TestReadPLY_Errors(t *testing.T) {
	header := "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\n" +
		"element face 1\nproperty list uchar int vertex_indices\nend_header\n"
	vertices := "0 0 0\n1 0 0\n0 1 0\n"

	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"missing magic", "format ascii 1.0\nend_header\n", "magic"},
		{"unsupported format", "ply\nformat binary_middle_endian 1.0\nend_header\n", "unsupported PLY format"},
		{"unknown type", "ply\nformat ascii 1.0\nelement vertex 1\nproperty half x\nend_header\n", "unsupported data type"},
		{"no end_header", "ply\nformat ascii 1.0\n", "end_header"},
		{"missing axis", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nend_header\n0 0\n", "x, y and z"},
		{"truncated vertices", header + "0 0 0\n1 0 0\n", "vertex 2"},
		{"index out of range", header + vertices + "3 0 1 3\n", "only 3 defined"},
		{"degenerate face", header + vertices + "2 0 1\n", "has 2 vertices"},
		{"extra values", header + vertices + "3 0 1 2 9\n", "unread values"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPLY(strings.NewReader(tt.input), "bad.ply")
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error %q does not mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoadPLY_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.ply")
	if err := os.WriteFile(path, binaryQuadPLY(t, "binary_little_endian", binary.LittleEndian), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	data, err := LoadPLY(path)
	if err != nil {
		t.Fatalf("LoadPLY failed: %v", err)
	}
	checkQuad(t, data)
}

func TestLoadPLY_NonExistentFile(t *testing.T) {
	if _, err := LoadPLY("does-not-exist.ply"); err == nil {
		t.Error("Expected error for missing file")
	}
}
