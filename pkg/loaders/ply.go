package loaders

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/pkg/errors"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is one "element" block of the header with its properties
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the raw data loaded from a PLY file
type PLYData struct {
	Vertices []core.Vec3 // Vertex positions (x, y, z)
	Faces    []int       // Triangle indices (3 per triangle)
}

// TriangleCount returns the number of triangles in the model
func (d *PLYData) TriangleCount() int {
	return len(d.Faces) / 3
}

// LoadPLY loads a PLY file and returns its vertex positions and triangulated
// faces. Other vertex properties and elements are skipped.
func LoadPLY(filename string) (*PLYData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening PLY file")
	}
	defer file.Close()

	data, err := ReadPLY(file, filename)
	if err != nil {
		return nil, err
	}

	logger.Infof("loaded %s: %d vertices, %d triangles in %v",
		filename, len(data.Vertices), data.TriangleCount(), time.Since(startTime))
	return data, nil
}

// ReadPLY parses an ascii or binary PLY stream. name is only used in error
// messages.
func ReadPLY(r io.Reader, name string) (*PLYData, error) {
	reader := bufio.NewReaderSize(r, 1024*1024)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing PLY header of %s", name)
	}

	var body plyBody
	switch header.Format {
	case "ascii":
		body = &asciiBody{reader: reader}
	case "binary_little_endian":
		body = &binaryBody{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		body = &binaryBody{reader: reader, order: binary.BigEndian}
	default:
		return nil, errors.Errorf("%s: unsupported PLY format %q", name, header.Format)
	}

	data := &PLYData{}
	for _, element := range header.Elements {
		var err error
		switch element.Name {
		case "vertex":
			err = readVertices(body, element, data)
		case "face":
			err = readFaces(body, element, data)
		default:
			err = skipElement(body, element)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s element of %s", element.Name, name)
		}
	}

	for i, index := range data.Faces {
		if index < 0 || index >= len(data.Vertices) {
			return nil, errors.Errorf("%s: face %d references vertex %d, only %d defined",
				name, i/3, index, len(data.Vertices))
		}
	}
	return data, nil
}

// parsePLYHeader reads header lines up to and including end_header, leaving
// reader positioned at the first byte of element data
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, errors.New("missing ply magic number")
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, errors.Wrap(err, "header ended before end_header")
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.Format == "" {
				return nil, errors.New("header has no format line")
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, errors.Errorf("invalid format line %q", strings.TrimSpace(line))
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, errors.Errorf("invalid element line %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, errors.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, errors.New("property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current := &header.Elements[len(header.Elements)-1]
			current.Properties = append(current.Properties, prop)
		default:
			return nil, errors.Errorf("unknown header keyword %q", parts[0])
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, errors.New("invalid property definition")
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, errors.New("invalid list property definition")
		}
		if typeSize(parts[1]) == 0 || typeSize(parts[2]) == 0 {
			return PLYProperty{}, errors.Errorf("unsupported list types %s %s", parts[1], parts[2])
		}
		return PLYProperty{IsList: true, ListType: parts[1], DataType: parts[2], Name: parts[3]}, nil
	}
	if typeSize(parts[0]) == 0 {
		return PLYProperty{}, errors.Errorf("unsupported data type: %s", parts[0])
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

// typeSize returns the size in bytes of a PLY scalar type, or 0 if unknown
func typeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

// plyBody reads scalar values from the element data section
type plyBody interface {
	value(dataType string) (float64, error)
	// endRecord is called after each element record
	endRecord() error
}

type asciiBody struct {
	reader *bufio.Reader
	fields []string
}

func (b *asciiBody) value(string) (float64, error) {
	for len(b.fields) == 0 {
		line, err := b.reader.ReadString('\n')
		if line == "" && err != nil {
			return 0, errors.Wrap(err, "unexpected end of data")
		}
		b.fields = strings.Fields(line)
	}
	field := b.fields[0]
	b.fields = b.fields[1:]
	value, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing value %q", field)
	}
	return value, nil
}

func (b *asciiBody) endRecord() error {
	if len(b.fields) != 0 {
		return errors.Errorf("%d unread values at end of record", len(b.fields))
	}
	return nil
}

type binaryBody struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binaryBody) value(dataType string) (float64, error) {
	size := typeSize(dataType)
	raw := b.buf[:size]
	if _, err := io.ReadFull(b.reader, raw); err != nil {
		return 0, errors.Wrap(err, "unexpected end of data")
	}
	switch dataType {
	case "char", "int8":
		return float64(int8(raw[0])), nil
	case "uchar", "uint8":
		return float64(raw[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(raw))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(raw)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(raw))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(raw)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(raw))), nil
	default:
		return math.Float64frombits(b.order.Uint64(raw)), nil
	}
}

func (b *binaryBody) endRecord() error { return nil }

// readList reads a list property: its count followed by that many values
func readList(body plyBody, prop PLYProperty) ([]float64, error) {
	count, err := body.value(prop.ListType)
	if err != nil {
		return nil, err
	}
	if count < 0 || count != math.Trunc(count) {
		return nil, errors.Errorf("invalid list length %v for %s", count, prop.Name)
	}
	values := make([]float64, int(count))
	for i := range values {
		if values[i], err = body.value(prop.DataType); err != nil {
			return nil, err
		}
	}
	return values, nil
}

func readVertices(body plyBody, element PLYElement, data *PLYData) error {
	axis := map[string]int{"x": 0, "y": 1, "z": 2}
	found := 0
	for _, prop := range element.Properties {
		if _, ok := axis[prop.Name]; ok && !prop.IsList {
			found++
		}
	}
	if found != 3 {
		return errors.New("vertex element needs x, y and z properties")
	}

	data.Vertices = make([]core.Vec3, 0, element.Count)
	for i := 0; i < element.Count; i++ {
		var coords [3]float64
		for _, prop := range element.Properties {
			if prop.IsList {
				if _, err := readList(body, prop); err != nil {
					return errors.Wrapf(err, "vertex %d", i)
				}
				continue
			}
			value, err := body.value(prop.Type)
			if err != nil {
				return errors.Wrapf(err, "vertex %d", i)
			}
			if a, ok := axis[prop.Name]; ok {
				coords[a] = value
			}
		}
		if err := body.endRecord(); err != nil {
			return errors.Wrapf(err, "vertex %d", i)
		}
		data.Vertices = append(data.Vertices, core.NewVec3(coords[0], coords[1], coords[2]))
	}
	return nil
}

// readFaces reads vertex_indices lists, splitting polygons into a fan around
// their first vertex
func readFaces(body plyBody, element PLYElement, data *PLYData) error {
	data.Faces = make([]int, 0, element.Count*3)
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if !prop.IsList {
				if _, err := body.value(prop.Type); err != nil {
					return errors.Wrapf(err, "face %d", i)
				}
				continue
			}
			values, err := readList(body, prop)
			if err != nil {
				return errors.Wrapf(err, "face %d", i)
			}
			if prop.Name != "vertex_indices" && prop.Name != "vertex_index" {
				continue
			}
			if len(values) < 3 {
				return errors.Errorf("face %d has %d vertices", i, len(values))
			}
			for j := 1; j+1 < len(values); j++ {
				data.Faces = append(data.Faces, int(values[0]), int(values[j]), int(values[j+1]))
			}
		}
		if err := body.endRecord(); err != nil {
			return errors.Wrapf(err, "face %d", i)
		}
	}
	return nil
}

func skipElement(body plyBody, element PLYElement) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			var err error
			if prop.IsList {
				_, err = readList(body, prop)
			} else {
				_, err = body.value(prop.Type)
			}
			if err != nil {
				return err
			}
		}
		if err := body.endRecord(); err != nil {
			return err
		}
	}
	return nil
}
