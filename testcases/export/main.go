// seehuhn.de/go/render3d - a software 3D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command export renders all test scenes to PNG files.  The images are
// used as reference images by the tests.  Run from the module root
// directory.
//
// Settings are read from the environment:
//
//	RENDER3D_OUT      output directory (default testdata/reference)
//	RENDER3D_FRAMES   number of frames per animated scene (default 1)
//	RENDER3D_STEP     time between frames (default 100ms)
//	RENDER3D_CACHE    surface cache size in bytes (default 16 MiB)
//	RENDER3D_VERBOSE  log debug messages to stderr
package main

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/kelseyhightower/envconfig"

	"seehuhn.de/go/render3d"
	"seehuhn.de/go/render3d/shade"
	"seehuhn.de/go/render3d/testcases"
)

type config struct {
	OutDir     string        `envconfig:"OUT" default:"testdata/reference"`
	Frames     int           `envconfig:"FRAMES" default:"1"`
	Step       time.Duration `envconfig:"STEP" default:"100ms"`
	CacheBytes int           `envconfig:"CACHE" default:"16777216"`
	Verbose    bool          `envconfig:"VERBOSE"`
}

func main() {
	var cfg config
	if err := envconfig.Process("render3d", &cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.Verbose {
		render3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config) error {
	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return err
	}
	cache := shade.NewCache(cfg.CacheBytes)

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for i := range testcases.All[category] {
			sc := &testcases.All[category][i]
			if err := export(cfg, category+"_"+sc.Name, sc, cache); err != nil {
				return err
			}
		}
	}
	return nil
}

// export writes the frames of one scene.  Surfaces are kept between
// frames, so that unchanged surfaces are taken from the cache.
func export(cfg *config, name string, sc *testcases.Scene, cache *shade.Cache) error {
	sr := render3d.NewSceneRenderer(sc, cache)
	defer sr.Release()

	if cfg.Frames <= 1 || sc.Duration() == 0 {
		img, err := sr.Render(sc.Duration())
		if err != nil {
			return err
		}
		return writePNG(filepath.Join(cfg.OutDir, name+".png"), img)
	}

	for frame := range cfg.Frames {
		t := time.Duration(frame) * cfg.Step
		img, err := sr.Render(t)
		if err != nil {
			return err
		}
		fname := fmt.Sprintf("%s_%03d.png", name, frame)
		if err := writePNG(filepath.Join(cfg.OutDir, fname), img); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(fname string, img image.Image) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
