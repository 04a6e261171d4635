package draw

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Mode selects the output representation.
type Mode int

const (
	Vectors Mode = iota
	Raster
)

func (m Mode) String() string {
	if m == Raster {
		return "raster"
	}
	return "vectors"
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "vectors", "vector":
		*m = Vectors
	case "raster":
		*m = Raster
	default:
		return errors.Errorf("unknown draw mode %q", text)
	}
	return nil
}

// GrayscaleCode names the segment attribute used for grayscale shading.
type GrayscaleCode int

const (
	GrayscaleOff GrayscaleCode = iota
	GrayscaleSpeed
	GrayscaleZ
)

func (c GrayscaleCode) String() string {
	switch c {
	case GrayscaleSpeed:
		return "s"
	case GrayscaleZ:
		return "z"
	default:
		return "off"
	}
}

func (c GrayscaleCode) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *GrayscaleCode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "off", "":
		*c = GrayscaleOff
	case "s", "S", "speed":
		*c = GrayscaleSpeed
	case "z", "Z":
		*c = GrayscaleZ
	default:
		return errors.Errorf("unknown grayscale code %q", text)
	}
	return nil
}

// Grayscale maps an attribute range onto intensities 255 (at Min) to 0 (at Max).
type Grayscale struct {
	Code GrayscaleCode
	Min  float64
	Max  float64
}

// Palette holds the display colours.
type Palette struct {
	Normal     colorful.Color
	Drawn      colorful.Color
	Highlight  colorful.Color
	ZMovement  colorful.Color
	Start      colorful.Color
	End        colorful.Color
	Background colorful.Color
}

// Config holds every engine option. The zero value is not useful; start from
// DefaultConfig.
type Config struct {
	Mode              Mode
	Simplify          bool
	SimplifyPrecision float64
	IgnoreZ           bool
	Palette           Palette
	Grayscale         Grayscale
	PointSize         float64

	// UpdateInterval is the cadence at which coalesced patch requests are
	// applied.
	UpdateInterval time.Duration
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultPalette returns the stock colours.
func DefaultPalette() Palette {
	return Palette{
		Normal:     mustHex("#000000"),
		Drawn:      mustHex("#d9d9d9"),
		Highlight:  mustHex("#9182e6"),
		ZMovement:  mustHex("#ff0000"),
		Start:      mustHex("#ff0000"),
		End:        mustHex("#00ff00"),
		Background: mustHex("#ffffff"),
	}
}

func DefaultConfig() Config {
	return Config{
		Mode:              Vectors,
		Simplify:          false,
		SimplifyPrecision: 0,
		Palette:           DefaultPalette(),
		Grayscale:         Grayscale{Code: GrayscaleOff, Min: 0, Max: 255},
		PointSize:         6,
		UpdateInterval:    100 * time.Millisecond,
	}
}

// Classifier returns the segment classifier configured by c.
func (c Config) Classifier() Classifier {
	return Classifier{Palette: c.Palette, Grayscale: c.Grayscale}
}
