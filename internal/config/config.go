// Package config reads the viewer's TOML settings file.
package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"pathview/internal/draw"
)

// File is the decoded settings file. Missing keys keep their defaults.
type File struct {
	Mode              draw.Mode `toml:"mode"`
	Simplify          bool      `toml:"simplify"`
	SimplifyPrecision float64   `toml:"simplify_precision"`
	IgnoreZ           bool      `toml:"ignore_z"`
	PointSize         float64   `toml:"point_size"`
	UpdateInterval    Duration  `toml:"update_interval"` // patch cadence: 100ms

	Colors    Colors    `toml:"colors"`
	Grayscale Grayscale `toml:"grayscale"`
	Viewer    Viewer    `toml:"viewer"`
}

type Colors struct {
	Normal     Color `toml:"normal"`
	Drawn      Color `toml:"drawn"`
	Highlight  Color `toml:"highlight"`
	ZMovement  Color `toml:"zmovement"`
	Start      Color `toml:"start"`
	End        Color `toml:"end"`
	Background Color `toml:"background"`
}

type Grayscale struct {
	Code draw.GrayscaleCode `toml:"code"`
	Min  float64            `toml:"min"`
	Max  float64            `toml:"max"`
}

// Viewer holds settings only the terminal viewer uses.
type Viewer struct {
	PlaybackStep     int      `toml:"playback_step"`     // segments marked drawn per tick
	PlaybackInterval Duration `toml:"playback_interval"` // time between playback ticks
}

func newFile() *File {
	d := draw.DefaultConfig()
	p := d.Palette
	return &File{
		Mode:              d.Mode,
		Simplify:          d.Simplify,
		SimplifyPrecision: d.SimplifyPrecision,
		IgnoreZ:           d.IgnoreZ,
		PointSize:         d.PointSize,
		UpdateInterval:    Duration{d.UpdateInterval},
		Colors: Colors{
			Normal:     Color{p.Normal},
			Drawn:      Color{p.Drawn},
			Highlight:  Color{p.Highlight},
			ZMovement:  Color{p.ZMovement},
			Start:      Color{p.Start},
			End:        Color{p.End},
			Background: Color{p.Background},
		},
		Grayscale: Grayscale{
			Code: d.Grayscale.Code,
			Min:  d.Grayscale.Min,
			Max:  d.Grayscale.Max,
		},
		Viewer: Viewer{
			PlaybackStep:     1,
			PlaybackInterval: Duration{Duration: 20 * time.Millisecond},
		},
	}
}

// Default returns the settings used when no file is given.
func Default() *File { return newFile() }

// Load reads the settings file at path. It fails on keys it does not know.
func Load(path string) (*File, error) {
	return load(path, true)
}

// Parse is like Load but reads the settings from text.
func Parse(text string) (*File, error) {
	return load(text, false)
}

func load(conf string, isFileName bool) (*File, error) {
	f := newFile()
	var md toml.MetaData
	var err error
	if isFileName {
		md, err = toml.DecodeFile(conf, f)
	} else {
		md, err = toml.Decode(conf, f)
	}
	if err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if u := md.Undecoded(); len(u) > 0 {
		return nil, errors.Errorf("undecoded fields in config: %v", u)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) validate() error {
	switch {
	case f.UpdateInterval.Duration <= 0:
		return errors.Errorf("update_interval must be positive, got %v", f.UpdateInterval)
	case f.SimplifyPrecision < 0:
		return errors.Errorf("simplify_precision must not be negative, got %v", f.SimplifyPrecision)
	case f.PointSize <= 0:
		return errors.Errorf("point_size must be positive, got %v", f.PointSize)
	case f.Viewer.PlaybackStep < 1:
		return errors.Errorf("viewer.playback_step must be at least 1, got %d", f.Viewer.PlaybackStep)
	case f.Viewer.PlaybackInterval.Duration <= 0:
		return errors.Errorf("viewer.playback_interval must be positive, got %v", f.Viewer.PlaybackInterval)
	}
	return nil
}

// Drawer returns the engine configuration described by f.
func (f *File) Drawer() draw.Config {
	c := f.Colors
	return draw.Config{
		Mode:              f.Mode,
		Simplify:          f.Simplify,
		SimplifyPrecision: f.SimplifyPrecision,
		IgnoreZ:           f.IgnoreZ,
		Palette: draw.Palette{
			Normal:     c.Normal.Color,
			Drawn:      c.Drawn.Color,
			Highlight:  c.Highlight.Color,
			ZMovement:  c.ZMovement.Color,
			Start:      c.Start.Color,
			End:        c.End.Color,
			Background: c.Background.Color,
		},
		Grayscale: draw.Grayscale{
			Code: f.Grayscale.Code,
			Min:  f.Grayscale.Min,
			Max:  f.Grayscale.Max,
		},
		PointSize:      f.PointSize,
		UpdateInterval: f.UpdateInterval.Duration,
	}
}

// Duration is a time.Duration with a UnmarshalText method so
// durations can be decoded from TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText is the method called by TOML when decoding a value
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Color is a colorful.Color decoded from a "#rrggbb" string.
type Color struct {
	colorful.Color
}

// UnmarshalText is the method called by TOML when decoding a value
func (c *Color) UnmarshalText(text []byte) error {
	v, err := colorful.Hex(string(text))
	if err != nil {
		return errors.Wrapf(err, "colour %q", text)
	}
	c.Color = v
	return nil
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }
