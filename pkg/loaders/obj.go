package loaders

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/material"
)

var logger = log.New("loaders")

var (
	// ErrUnsupportedRecord is returned for OBJ records other than comments, vertices and faces.
	ErrUnsupportedRecord = errors.New("loaders: unsupported OBJ record")

	// ErrMalformedRecord is returned for vertex or face records that cannot be parsed.
	ErrMalformedRecord = errors.New("loaders: malformed OBJ record")
)

// Mesh is a triangle mesh read from an OBJ file. Face indices are 0-based.
type Mesh struct {
	Vertices []core.Vec3
	Faces    [][3]int
}

// Triangles places the mesh with transform and builds its triangles
func (m *Mesh) Triangles(transform geometry.MeshTransform, mat material.Material) ([]geometry.Primitive, error) {
	return geometry.NewTriangleMesh(transform.Apply(m.Vertices), m.Faces, mat)
}

// LoadOBJ reads a triangle mesh from an OBJ file
func LoadOBJ(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open OBJ file")
	}
	defer file.Close()

	mesh, err := ParseOBJ(file)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filename)
	}
	logger.Debugf("loaded %s: %d vertices, %d faces", filename, len(mesh.Vertices), len(mesh.Faces))
	return mesh, nil
}

// ParseOBJ reads a triangle mesh made of "v x y z" and "f i j k" records.
// Face indices are 1-based and may carry "/vt/vn" suffixes, which are
// ignored. Lines starting with '#' are comments. Any other record is an
// error, as is a face referencing a vertex that was not defined.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	mesh := &Mesh{}
	lineNum := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "v":
			vertex, err := parseVertex(lineTokens)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
			mesh.Vertices = append(mesh.Vertices, vertex)
		case "f":
			face, err := parseFace(lineTokens)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
			mesh.Faces = append(mesh.Faces, face)
		default:
			return nil, errors.Wrapf(ErrUnsupportedRecord, "line %d: %q", lineNum, lineTokens[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read OBJ data")
	}

	for i, face := range mesh.Faces {
		for _, index := range face {
			if index >= len(mesh.Vertices) {
				return nil, errors.Wrapf(ErrMalformedRecord, "face %d references vertex %d of %d", i+1, index+1, len(mesh.Vertices))
			}
		}
	}
	return mesh, nil
}

func parseVertex(lineTokens []string) (core.Vec3, error) {
	if len(lineTokens) != 4 {
		return core.Vec3{}, errors.Wrapf(ErrMalformedRecord, `expected 3 coordinates for "v"; got %d`, len(lineTokens)-1)
	}

	var coords [3]float64
	for i := range coords {
		v, err := strconv.ParseFloat(lineTokens[i+1], 64)
		if err != nil {
			return core.Vec3{}, errors.Wrapf(ErrMalformedRecord, "vertex coordinate %q", lineTokens[i+1])
		}
		coords[i] = v
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

func parseFace(lineTokens []string) ([3]int, error) {
	var face [3]int
	if len(lineTokens) != 4 {
		return face, errors.Wrapf(ErrMalformedRecord, `expected 3 indices for triangular "f"; got %d`, len(lineTokens)-1)
	}

	for i := range face {
		token := lineTokens[i+1]
		if slash := strings.IndexByte(token, '/'); slash >= 0 {
			token = token[:slash]
		}
		index, err := strconv.Atoi(token)
		if err != nil || index < 1 {
			return face, errors.Wrapf(ErrMalformedRecord, "face index %q", lineTokens[i+1])
		}
		face[i] = index - 1
	}
	return face, nil
}
