package loaders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

const quadOBJ = `# unit quad
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
vt 0 0
f 1/1/1 2/1/1 3/1/1 4/1/1
`

func TestReadOBJ_FanTriangulation(t *testing.T) {
	data, err := ReadOBJ(strings.NewReader(quadOBJ), "quad.obj")
	if err != nil {
		t.Fatalf("ReadOBJ failed: %v", err)
	}

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

func TestReadOBJ_NegativeIndices(t *testing.T) {
	input := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	data, err := ReadOBJ(strings.NewReader(input), "negative.obj")
	if err != nil {
		t.Fatalf("ReadOBJ failed: %v", err)
	}
	for i, want := range []int{0, 1, 2} {
		if data.Faces[i] != want {
			t.Errorf("Faces[%d] = %d, want %d", i, data.Faces[i], want)
		}
	}
}

func TestReadOBJ_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"short vertex", "v 1 2\n", "[bad.obj: 1]"},
		{"bad coordinate", "v 1 x 2\n", "parsing vertex coordinate"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", "[bad.obj: 3]"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n", "only 3 defined"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", "index 0 is invalid"},
		{"bad index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf a 1 2\n", "parsing face vertex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOBJ(strings.NewReader(tt.input), "bad.obj")
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error %q does not mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoadOBJ_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	data, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if data.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", data.TriangleCount())
	}
}

func TestLoadOBJ_NonExistentFile(t *testing.T) {
	if _, err := LoadOBJ("does-not-exist.obj"); err == nil {
		t.Error("Expected error for missing file")
	}
}
