// Command fragrender renders a glTF file (or the demo plot, when no file is given) to a PNG image.
//
// Settings come from the environment:
//
//	DEBUG       log debug output to stderr
//	WIDTH       image width in pixels (default 800)
//	HEIGHT      image height in pixels (default 600)
//	OUT         output file (default frag3d.png)
//	PAINTER     "raster" (default) or "gg"
//	NO_SPLIT    sort fragments without splitting them
//	MAX_SPLITS  how many times a fragment may be split (default 3)
//	PROFILE     write a CPU profile to cpu.out
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"strconv"

	"github.com/solarlune/frag3d"
	"github.com/solarlune/frag3d/examples/demoscene"
	"github.com/solarlune/frag3d/ggpaint"
	"github.com/solarlune/frag3d/raster"
)

func envInt(name string, def int) int {
	value := os.Getenv(name)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		fmt.Printf("Ignoring %s=%q: want a positive integer\n", name, value)
		return def
	}
	return n
}

func main() {

	if os.Getenv("DEBUG") != "" {
		frag3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if os.Getenv("PROFILE") != "" {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	width := envInt("WIDTH", 800)
	height := envInt("HEIGHT", 600)

	out := os.Getenv("OUT")
	if out == "" {
		out = "frag3d.png"
	}

	opts := frag3d.DefaultRenderOptions()
	opts.Sort.Split = os.Getenv("NO_SPLIT") == ""
	opts.Sort.MaxSplits = envInt("MAX_SPLITS", opts.Sort.MaxSplits)

	scene := demoscene.New(width, height)
	if len(os.Args) > 1 {
		root, err := frag3d.LoadGLTFFile(os.Args[1], nil)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		scene.Root = root
	}

	if err := render(scene, width, height, out, os.Getenv("PAINTER"), opts); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

}

func render(scene *frag3d.Scene, width, height int, out, painter string, opts *frag3d.RenderOptions) error {

	background := frag3d.NewColor(0.05, 0.05, 0.08, 1)

	switch painter {
	case "gg":
		dc, p := ggpaint.NewContext(width, height, background)
		defer dc.Close()
		if err := scene.Render(p, width, height, opts); err != nil {
			return err
		}
		return dc.SavePNG(out)
	case "", "raster":
		p := raster.New(width, height, background)
		if err := scene.Render(p, width, height, opts); err != nil {
			return err
		}
		return p.SavePNG(out)
	default:
		return fmt.Errorf("unknown painter %q", painter)
	}

}
