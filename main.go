package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// renderOptions holds the render command's flags; zero values keep the scene defaults
type renderOptions struct {
	scene      string
	width      int
	samples    int
	depth      int
	workers    int
	seed       uint64
	stratified bool
	background string
	out        string
	mesh       string
	texture    string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pathtracer",
		Short:        "CPU Monte Carlo path tracer",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newScenesCmd(), newServeCmd())
	return root
}

func newScenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List the built-in scenes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, info := range scene.List() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", info.Name, info.Description)
			}
		},
	}
}

func newServeCmd() *cobra.Command {
	var addr string
	var workers int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve renders of the built-in scenes over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.NewServer(addr, workers, renderer.NewDefaultLogger()).Start()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "number of render workers per request")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.scene, "scene", "bouncing-spheres", "scene to render (see the scenes command)")
	flags.IntVar(&opts.width, "width", 0, "image width in pixels (scene default when 0)")
	flags.IntVar(&opts.samples, "samples", 0, "samples per pixel (scene default when 0)")
	flags.IntVar(&opts.depth, "depth", 0, "maximum bounce depth (scene default when 0)")
	flags.IntVar(&opts.workers, "workers", runtime.NumCPU(), "number of render workers")
	flags.Uint64Var(&opts.seed, "seed", 0, "seed for scene layout and sampling")
	flags.BoolVar(&opts.stratified, "stratified", false, "stratify samples on a sqrt(N) x sqrt(N) grid")
	flags.StringVar(&opts.background, "background", "", "background color as #rrggbb (scene default when empty)")
	flags.StringVarP(&opts.out, "out", "o", "", "output PNG path (default output/<scene>.png)")
	flags.StringVar(&opts.mesh, "mesh", "", "PLY, glTF or GLB file for the mesh scene")
	flags.StringVar(&opts.texture, "texture", "", "PNG or JPEG image for textured spheres")

	return cmd
}

func runRender(cmd *cobra.Command, opts renderOptions) error {
	logger := renderer.NewDefaultLogger()

	s, err := scene.Create(opts.scene, scene.Options{
		Seed:        opts.seed,
		TexturePath: opts.texture,
		MeshPath:    opts.mesh,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	config, err := applyOverrides(cmd, s.Camera, opts)
	if err != nil {
		return err
	}
	camera, err := renderer.NewCamera(config)
	if err != nil {
		return err
	}

	raytracer := renderer.NewRaytracer(camera, renderer.DefaultRenderConfig().WithWorkers(opts.workers), logger)
	raytracer.SetProgressCallback(progressLogger(logger))

	img, stats := raytracer.Render(s.World)
	logger.Printf("%s: %d pixels, %d samples in %v (%.0f samples/s, %d workers)\n",
		s.Name, stats.TotalPixels, stats.TotalSamples, stats.Elapsed, stats.SamplesPerSecond(), stats.NumWorkers)

	out := opts.out
	if out == "" {
		out = filepath.Join("output", s.Name+".png")
	}
	if err := writePNG(out, img); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", out)
	return nil
}

// applyOverrides copies explicitly set flags over the scene's camera settings
func applyOverrides(cmd *cobra.Command, config renderer.CameraConfig, opts renderOptions) (renderer.CameraConfig, error) {
	flags := cmd.Flags()
	if flags.Changed("width") {
		config.ImageWidth = opts.width
	}
	if flags.Changed("samples") {
		config.SamplesPerPixel = opts.samples
	}
	if flags.Changed("depth") {
		config.MaxDepth = opts.depth
	}
	if flags.Changed("background") {
		background, err := scene.ParseHexColor(opts.background)
		if err != nil {
			return config, err
		}
		config.Background = background
	}
	config.Seed = opts.seed
	config.Stratified = opts.stratified
	return config, nil
}

// progressLogger reports every tenth of the image
func progressLogger(logger core.Logger) renderer.ProgressFunc {
	lastDecile := 0
	return func(done, total int) {
		decile := done * 10 / total
		if decile > lastDecile {
			lastDecile = decile
			logger.Printf("Progress: %d%%\n", decile*10)
		}
	}
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return file.Close()
}
