// Package loaders reads model files from disk into raw geometry buffers.
package loaders

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/pkg/errors"
)

var logger = log.New("loaders")

// OBJData contains the raw data loaded from a Wavefront OBJ file
type OBJData struct {
	Vertices []core.Vec3 // Vertex positions (x, y, z)
	Faces    []int       // Triangle indices (3 per triangle)
}

// TriangleCount returns the number of triangles in the model
func (d *OBJData) TriangleCount() int {
	return len(d.Faces) / 3
}

// LoadOBJ loads an OBJ file and returns its vertex positions and triangulated
// faces. Polygons with more than three vertices are split into a fan around
// their first vertex. Texture coordinates, normals, groups and materials are
// ignored.
func LoadOBJ(filename string) (*OBJData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening OBJ file")
	}
	defer file.Close()

	data, err := ReadOBJ(file, filename)
	if err != nil {
		return nil, err
	}

	logger.Infof("loaded %s: %d vertices, %d triangles in %v",
		filename, len(data.Vertices), data.TriangleCount(), time.Since(startTime))
	return data, nil
}

// ReadOBJ parses OBJ text from r. name is only used in error messages.
func ReadOBJ(r io.Reader, name string) (*OBJData, error) {
	data := &OBJData{}
	lineNum := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 || strings.HasPrefix(tokens[0], "#") {
			continue
		}

		switch tokens[0] {
		case "v":
			v, err := parseVertex(tokens)
			if err != nil {
				return nil, errors.Wrapf(err, "[%s: %d]", name, lineNum)
			}
			data.Vertices = append(data.Vertices, v)
		case "f":
			indices, err := parseFace(tokens, len(data.Vertices))
			if err != nil {
				return nil, errors.Wrapf(err, "[%s: %d]", name, lineNum)
			}
			for i := 1; i+1 < len(indices); i++ {
				data.Faces = append(data.Faces, indices[0], indices[i], indices[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return data, nil
}

// parseVertex parses "v x y z [w]"
func parseVertex(tokens []string) (core.Vec3, error) {
	if len(tokens) < 4 {
		return core.Vec3{}, errors.Errorf("unsupported syntax for 'v'; expected 3 arguments; got %d", len(tokens)-1)
	}
	var coords [3]float64
	for i := range coords {
		value, err := strconv.ParseFloat(tokens[i+1], 64)
		if err != nil {
			return core.Vec3{}, errors.Wrapf(err, "parsing vertex coordinate %q", tokens[i+1])
		}
		coords[i] = value
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// parseFace parses "f a b c ..." where each vertex reference may be of the
// form v, v/vt, v//vn or v/vt/vn. Indices are 1-based; negative indices count
// back from the most recently defined vertex. The result is 0-based.
func parseFace(tokens []string, vertexCount int) ([]int, error) {
	if len(tokens) < 4 {
		return nil, errors.Errorf("unsupported syntax for 'f'; expected at least 3 vertices; got %d", len(tokens)-1)
	}
	indices := make([]int, 0, len(tokens)-1)
	for _, token := range tokens[1:] {
		ref := strings.SplitN(token, "/", 2)[0]
		index, err := strconv.Atoi(ref)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing face vertex %q", token)
		}
		switch {
		case index > 0:
			index--
		case index < 0:
			index += vertexCount
		default:
			return nil, errors.New("face vertex index 0 is invalid")
		}
		if index < 0 || index >= vertexCount {
			return nil, errors.Errorf("face references vertex %s, only %d defined", ref, vertexCount)
		}
		indices = append(indices, index)
	}
	return indices, nil
}
