package loader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/robokit/armviz/engine/model"
)

// stlTriangleSize is the byte size of one triangle record in a binary STL
// file: 12-byte normal, three 12-byte vertices, 2-byte attribute count.
const stlTriangleSize = 50

// stlHeaderSize is the byte size of the binary STL header plus the
// triangle count field.
const stlHeaderSize = 84

// stlLoaderBackend parses STL mesh files, both binary and ASCII variants.
// STL carries no color or named sub-meshes, so every import produces a
// single flat-shaded triangle mesh with white vertex colors; the render
// material's base color supplies the link tint.
type stlLoaderBackend struct{}

var _ loaderBackend = &stlLoaderBackend{}

func newSTLLoaderBackend() loaderBackend {
	return &stlLoaderBackend{}
}

func (b *stlLoaderBackend) Load(path string) (*model.ImportedModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return b.parse(data, name)
}

func (b *stlLoaderBackend) LoadReader(r io.Reader, name string) (*model.ImportedModel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return b.parse(data, name)
}

// parse dispatches between the binary and ASCII STL variants. The "solid"
// prefix alone is not reliable since some exporters write it into binary
// headers, so the binary branch is taken when the declared triangle count
// matches the file size exactly.
func (b *stlLoaderBackend) parse(data []byte, name string) (*model.ImportedModel, error) {
	if len(data) >= stlHeaderSize {
		count := binary.LittleEndian.Uint32(data[80:stlHeaderSize])
		if stlHeaderSize+int(count)*stlTriangleSize == len(data) {
			return b.parseBinary(data, name, int(count))
		}
	}
	return b.parseASCII(data, name)
}

func (b *stlLoaderBackend) parseBinary(data []byte, name string, count int) (*model.ImportedModel, error) {
	vertices := make([]model.GPUVertex, 0, count*3)
	indices := make([]uint32, 0, count*3)

	offset := stlHeaderSize
	for t := 0; t < count; t++ {
		var normal [3]float32
		for i := range 3 {
			normal[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[offset+i*4:]))
		}

		var corners [3][3]float32
		for v := range 3 {
			base := offset + 12 + v*12
			for i := range 3 {
				corners[v][i] = math.Float32frombits(binary.LittleEndian.Uint32(data[base+i*4:]))
			}
		}

		// Some exporters write zero normals; recover from the winding.
		if normal == ([3]float32{}) {
			normal = faceNormal(corners[0], corners[1], corners[2])
		}

		for v := range 3 {
			indices = append(indices, uint32(len(vertices)))
			vertices = append(vertices, model.GPUVertex{
				Position: corners[v],
				Normal:   normal,
				Color:    [4]float32{1, 1, 1, 1},
			})
		}

		offset += stlTriangleSize
	}

	return b.finish(name, vertices, indices)
}

func (b *stlLoaderBackend) parseASCII(data []byte, name string) (*model.ImportedModel, error) {
	var vertices []model.GPUVertex
	var indices []uint32

	var normal [3]float32
	var corners [][3]float32

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				n, err := parseFloat3(fields[2:5])
				if err != nil {
					return nil, fmt.Errorf("stl: line %d: %w", line, err)
				}
				normal = n
			}
			corners = corners[:0]
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("stl: line %d: vertex needs 3 coordinates", line)
			}
			v, err := parseFloat3(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("stl: line %d: %w", line, err)
			}
			corners = append(corners, v)
		case "endfacet":
			if len(corners) != 3 {
				return nil, fmt.Errorf("stl: line %d: facet has %d vertices, want 3", line, len(corners))
			}
			if normal == ([3]float32{}) {
				normal = faceNormal(corners[0], corners[1], corners[2])
			}
			for _, c := range corners {
				indices = append(indices, uint32(len(vertices)))
				vertices = append(vertices, model.GPUVertex{
					Position: c,
					Normal:   normal,
					Color:    [4]float32{1, 1, 1, 1},
				})
			}
			normal = [3]float32{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("stl: %w", err)
	}

	return b.finish(name, vertices, indices)
}

func (b *stlLoaderBackend) finish(name string, vertices []model.GPUVertex, indices []uint32) (*model.ImportedModel, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("stl: %q contains no triangles", name)
	}

	boundingMin, boundingMax := meshBounds(vertices)
	return &model.ImportedModel{
		Name: name,
		Meshes: []model.ImportedMesh{
			{
				Name:        name,
				Vertices:    vertices,
				Indices:     indices,
				Topology:    model.TopologyTriangles,
				BoundingMin: boundingMin,
				BoundingMax: boundingMax,
			},
		},
	}, nil
}

func parseFloat3(fields []string) ([3]float32, error) {
	var out [3]float32
	for i, f := range fields[:3] {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return out, fmt.Errorf("bad float %q", f)
		}
		out[i] = float32(v)
	}
	return out, nil
}

// faceNormal returns the normalized cross product of the triangle edges,
// or +z for degenerate triangles.
func faceNormal(a, b, c [3]float32) [3]float32 {
	e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	n := [3]float32{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}
	length := float32(math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
	if length == 0 {
		return [3]float32{0, 0, 1}
	}
	return [3]float32{n[0] / length, n[1] / length, n[2] / length}
}

// meshBounds returns the axis-aligned bounding box of the vertex positions.
func meshBounds(vertices []model.GPUVertex) ([3]float32, [3]float32) {
	boundingMin := vertices[0].Position
	boundingMax := vertices[0].Position
	for _, v := range vertices[1:] {
		for i := range 3 {
			if v.Position[i] < boundingMin[i] {
				boundingMin[i] = v.Position[i]
			}
			if v.Position[i] > boundingMax[i] {
				boundingMax[i] = v.Position[i]
			}
		}
	}
	return boundingMin, boundingMax
}
