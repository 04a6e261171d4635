package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"pathview/internal/config"
	"pathview/internal/draw"
	"pathview/internal/geom"
	"pathview/internal/tui"
)

var (
	flagConf   = flag.String("config", "", "path to a TOML settings file")
	flagLog    = flag.String("log", "", "write debug logs to this file")
	flagExport = flag.String("export", "", "render the toolpath as a raster PNG to this file and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: pathview [flags] [toolpath.csv|.json|.wkt|.kml]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	settings := config.Default()
	if *flagConf != "" {
		var err error
		settings, err = config.Load(*flagConf)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *flagLog != "" {
		f, err := os.OpenFile(*flagLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		draw.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *flagExport != "" {
		if flag.NArg() != 1 {
			log.Fatal("-export needs exactly one toolpath file")
		}
		if err := export(flag.Arg(0), *flagExport, settings.Drawer()); err != nil {
			log.Fatal(err)
		}
		return
	}

	var m tea.Model
	if flag.NArg() > 0 {
		m = tui.NewWithPath(settings, flag.Arg(0))
	} else {
		m = tui.New(settings)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}

// export builds the raster representation of the toolpath at in and writes
// it to out as PNG.
func export(in, out string, cfg draw.Config) error {
	tp, err := geom.Load(in)
	if err != nil {
		return err
	}
	cfg.Mode = draw.Raster
	d := draw.New(tp, cfg)
	d.UpdateData(nil)
	rg, ok := d.Geometry().(*draw.RasterGeometry)
	if !ok || rg.Image == nil {
		w, h := tp.Resolution()
		return errors.Errorf("toolpath needs a %dx%d raster, limit is %d per side", w, h, draw.MaxImageSize)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, rg.Snapshot()); err != nil {
		f.Close()
		return errors.Wrap(err, "encode png")
	}
	return f.Close()
}
