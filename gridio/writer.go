// Package gridio persists generated grids as raw little-endian
// float64 field files alongside a yaml manifest describing the tile
// layout, so downstream tools can address the flat buffers without
// re-deriving offsets.
package gridio

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"

	"github.com/gridtools/cubedsphere/cubesphere"
)

// TileInfo records one tile's dimensions in the manifest.
type TileInfo struct {
	Tile int `json:"tile"`
	Ni   int `json:"ni"`
	Nj   int `json:"nj"`
	Nx   int `json:"nx"`
	Ny   int `json:"ny"`
}

// FieldInfo records one persisted field file.
type FieldInfo struct {
	Name  string `json:"name"`
	File  string `json:"file"`
	Count int    `json:"count"`
	Units string `json:"units"`
}

// Manifest describes one written grid directory.
type Manifest struct {
	GridType string      `json:"grid_type"`
	Tiles    []TileInfo  `json:"tiles"`
	Fields   []FieldInfo `json:"fields"`
}

// WriteGrid writes all populated fields of the grid into dir, one
// binary file per field plus manifest.yaml. The directory is created
// if needed.
func WriteGrid(dir string, g *cubesphere.Grid) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("gridio: create %s: %v", dir, err)
	}

	man := Manifest{GridType: "gnomonic_ed"}
	for n, s := range g.Layout.Shapes {
		man.Tiles = append(man.Tiles, TileInfo{
			Tile: n + 1, Ni: s.Ni, Nj: s.Nj, Nx: s.Nx(), Ny: s.Ny(),
		})
	}

	fields := []struct {
		name  string
		units string
		data  []float64
	}{
		{"x", "degrees_east", g.X},
		{"y", "degrees_north", g.Y},
		{"dx", "meters", g.DX},
		{"dy", "meters", g.DY},
		{"area", "m2", g.Area},
		{"angle_dx", "degrees", g.AngleDX},
		{"angle_dy", "degrees", g.AngleDY},
	}
	for _, f := range fields {
		if f.data == nil {
			continue
		}
		file := f.name + ".bin"
		if err := writeField(filepath.Join(dir, file), f.data); err != nil {
			return err
		}
		man.Fields = append(man.Fields, FieldInfo{
			Name: f.name, File: file, Count: len(f.data), Units: f.units,
		})
	}

	out, err := yaml.Marshal(man)
	if err != nil {
		return fmt.Errorf("gridio: marshal manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "manifest.yaml"), out, 0644); err != nil {
		return fmt.Errorf("gridio: write manifest: %v", err)
	}
	return nil
}

func writeField(path string, data []float64) error {
	buf := make([]byte, 8*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("gridio: write %s: %v", path, err)
	}
	return nil
}

// ReadManifest loads manifest.yaml from dir.
func ReadManifest(dir string) (*Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return nil, fmt.Errorf("gridio: read manifest: %v", err)
	}
	var man Manifest
	if err := yaml.Unmarshal(raw, &man); err != nil {
		return nil, fmt.Errorf("gridio: parse manifest: %v", err)
	}
	return &man, nil
}

// ReadField loads one binary field file written by WriteGrid.
func ReadField(dir string, f FieldInfo) ([]float64, error) {
	raw, err := os.ReadFile(filepath.Join(dir, f.File))
	if err != nil {
		return nil, fmt.Errorf("gridio: read field %s: %v", f.Name, err)
	}
	if len(raw) != 8*f.Count {
		return nil, fmt.Errorf("gridio: field %s has %d bytes, want %d", f.Name, len(raw), 8*f.Count)
	}
	data := make([]float64, f.Count)
	for i := range data {
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
	}
	return data, nil
}
