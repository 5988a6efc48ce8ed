package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/robokit/armviz/engine/model"
)

// objLoaderBackend parses Wavefront OBJ mesh files. Positions and normals
// are supported; texture coordinates and material libraries are skipped
// since link meshes are tinted through the render material's base color.
// Faces with more than three vertices are triangulated as a fan.
type objLoaderBackend struct{}

var _ loaderBackend = &objLoaderBackend{}

func newOBJLoaderBackend() loaderBackend {
	return &objLoaderBackend{}
}

func (b *objLoaderBackend) Load(path string) (*model.ImportedModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return b.LoadReader(f, name)
}

func (b *objLoaderBackend) LoadReader(r io.Reader, name string) (*model.ImportedModel, error) {
	var positions [][3]float32
	var normals [][3]float32

	var vertices []model.GPUVertex
	var indices []uint32

	// corner refs from one face line, reused across lines
	type cornerRef struct {
		position int
		normal   int // -1 when the face carries no normal index
	}
	var corners []cornerRef

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj: line %d: vertex needs 3 coordinates", line)
			}
			p, err := parseFloat3(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("obj: line %d: %w", line, err)
			}
			positions = append(positions, p)
		case "vn":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj: line %d: normal needs 3 coordinates", line)
			}
			n, err := parseFloat3(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("obj: line %d: %w", line, err)
			}
			normals = append(normals, n)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj: line %d: face needs at least 3 vertices", line)
			}
			corners = corners[:0]
			for _, ref := range fields[1:] {
				posIdx, normIdx, err := parseOBJCorner(ref, len(positions), len(normals))
				if err != nil {
					return nil, fmt.Errorf("obj: line %d: %w", line, err)
				}
				corners = append(corners, cornerRef{position: posIdx, normal: normIdx})
			}

			// Fan triangulation around the first corner.
			for t := 1; t+1 < len(corners); t++ {
				tri := [3]cornerRef{corners[0], corners[t], corners[t+1]}

				var flatNormal [3]float32
				needFlat := tri[0].normal < 0 || tri[1].normal < 0 || tri[2].normal < 0
				if needFlat {
					flatNormal = faceNormal(
						positions[tri[0].position],
						positions[tri[1].position],
						positions[tri[2].position],
					)
				}

				for _, c := range tri {
					n := flatNormal
					if c.normal >= 0 {
						n = normals[c.normal]
					}
					indices = append(indices, uint32(len(vertices)))
					vertices = append(vertices, model.GPUVertex{
						Position: positions[c.position],
						Normal:   n,
						Color:    [4]float32{1, 1, 1, 1},
					})
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}

	if len(vertices) == 0 {
		return nil, fmt.Errorf("obj: %q contains no faces", name)
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

// parseOBJCorner resolves one face corner reference ("v", "v/vt", "v//vn",
// or "v/vt/vn") into zero-based position and normal indices. OBJ indices are
// one-based; negative values count back from the end of the current list.
// The returned normal index is -1 when the corner has none.
func parseOBJCorner(ref string, positionCount, normalCount int) (int, int, error) {
	parts := strings.Split(ref, "/")

	posIdx, err := resolveOBJIndex(parts[0], positionCount)
	if err != nil {
		return 0, 0, fmt.Errorf("bad position index %q", parts[0])
	}

	normIdx := -1
	if len(parts) == 3 && parts[2] != "" {
		normIdx, err = resolveOBJIndex(parts[2], normalCount)
		if err != nil {
			return 0, 0, fmt.Errorf("bad normal index %q", parts[2])
		}
	}

	return posIdx, normIdx, nil
}

func resolveOBJIndex(field string, count int) (int, error) {
	raw, err := strconv.Atoi(field)
	if err != nil {
		return 0, err
	}
	var idx int
	if raw < 0 {
		idx = count + raw
	} else {
		idx = raw - 1
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("index %d out of range (have %d)", raw, count)
	}
	return idx, nil
}
