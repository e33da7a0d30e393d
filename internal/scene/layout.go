package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:embed forest.yaml
var defaultLayout []byte

type BallSpec struct {
	Position [3]float32 `yaml:"position"`
	Radius   float32    `yaml:"radius"`
	Lat      int        `yaml:"lat"`
	Long     int        `yaml:"long"`
	Color    [3]float32 `yaml:"color"`
}

type CubeSpec struct {
	Position [3]float32 `yaml:"position"`
	Size     float32    `yaml:"size"`
	Color    [3]float32 `yaml:"color"`
}

type GroundSpec struct {
	XLen  float32    `yaml:"xlen"`
	ZLen  float32    `yaml:"zlen"`
	NX    int        `yaml:"nx"`
	NZ    int        `yaml:"nz"`
	Color [3]float32 `yaml:"color"`
}

// ForestSpec drives the box scatter over the ground.
type ForestSpec struct {
	Enabled   bool       `yaml:"enabled"`
	Cell      float32    `yaml:"cell"`      // grid spacing on x and z
	Frequency float64    `yaml:"frequency"` // noise samples per world unit
	Threshold float64    `yaml:"threshold"` // noise value a cell must exceed
	MinSize   float32    `yaml:"min_size"`
	MaxSize   float32    `yaml:"max_size"`
	Jitter    float32    `yaml:"jitter"`   // fraction of a cell a box may drift
	Clearing  float32    `yaml:"clearing"` // radius kept empty around the spawn point
	Color     [3]float32 `yaml:"color"`
}

type SkySpec struct {
	Horizon [3]float32 `yaml:"horizon"`
	Zenith  [3]float32 `yaml:"zenith"`
}

// Layout describes everything placed in the world besides the camera.
type Layout struct {
	Ball   BallSpec   `yaml:"ball"`
	Cube   CubeSpec   `yaml:"cube"`
	Ground GroundSpec `yaml:"ground"`
	Forest ForestSpec `yaml:"forest"`
	Sky    SkySpec    `yaml:"sky"`
}

// DefaultLayout returns the built-in layout.
func DefaultLayout() (*Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal(defaultLayout, &layout); err != nil {
		return nil, fmt.Errorf("scene: unmarshal default layout: %w", err)
	}
	return &layout, nil
}

// LoadLayout reads the layout at path over the built-in one, so a file only
// needs the fields it changes. An empty path yields the built-in layout.
func LoadLayout(path string) (*Layout, error) {
	layout, err := DefaultLayout()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return layout, layout.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, layout); err != nil {
		return nil, fmt.Errorf("scene: unmarshal %s: %w", path, err)
	}
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return layout, nil
}

func (l *Layout) Validate() error {
	var errs []error
	if l.Ball.Radius <= 0 {
		errs = append(errs, fmt.Errorf("ball radius must be positive, got %v", l.Ball.Radius))
	}
	if l.Cube.Size <= 0 {
		errs = append(errs, fmt.Errorf("cube size must be positive, got %v", l.Cube.Size))
	}
	if l.Ground.XLen <= 0 || l.Ground.ZLen <= 0 {
		errs = append(errs, fmt.Errorf("ground extent must be positive, got %vx%v", l.Ground.XLen, l.Ground.ZLen))
	}
	if l.Ground.NX < 1 || l.Ground.NZ < 1 {
		errs = append(errs, fmt.Errorf("ground subdivisions must be at least 1, got %dx%d", l.Ground.NX, l.Ground.NZ))
	}
	if l.Forest.Enabled {
		f := l.Forest
		if f.Cell <= 0 {
			errs = append(errs, fmt.Errorf("forest cell must be positive, got %v", f.Cell))
		}
		if f.MinSize <= 0 || f.MaxSize < f.MinSize {
			errs = append(errs, fmt.Errorf("forest sizes must satisfy 0 < min_size <= max_size, got %v..%v", f.MinSize, f.MaxSize))
		}
		if f.Jitter < 0 || f.Jitter > 1 {
			errs = append(errs, fmt.Errorf("forest jitter must be within 0..1, got %v", f.Jitter))
		}
		if f.Clearing < 0 {
			errs = append(errs, fmt.Errorf("forest clearing must not be negative, got %v", f.Clearing))
		}
	}
	return errors.Join(errs...)
}

func vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3(v)
}
