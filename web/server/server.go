package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// maxPixelSamples caps width*height*samples for a single request
const maxPixelSamples = 2000 * 2000 * 64

// Server renders built-in scenes over HTTP
type Server struct {
	addr    string
	workers int
	logger  core.Logger
}

// NewServer creates a new web server; workers <= 0 uses every CPU
func NewServer(addr string, workers int, logger core.Logger) *Server {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Server{addr: addr, workers: workers, logger: logger}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Scene name (e.g., "cornell-box")
	Width   int    `json:"width"`   // Image width, 0 keeps the scene default
	Samples int    `json:"samples"` // Samples per pixel, 0 keeps the scene default
	Depth   int    `json:"depth"`   // Maximum bounce depth, 0 keeps the scene default
	Seed    uint64 `json:"seed"`
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/scenes", s.handleScenes)
	mux.HandleFunc("GET /api/render", s.handleRender)
	return mux
}

// Start serves the API until the listener fails
func (s *Server) Start() error {
	s.logger.Printf("Starting web server on %s\n", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	type sceneJSON struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	infos := scene.List()
	scenes := make([]sceneJSON, len(infos))
	for i, info := range infos {
		scenes[i] = sceneJSON{Name: info.Name, Description: info.Description}
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleRender renders the requested scene and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sc, err := scene.Create(req.Scene, scene.Options{Seed: req.Seed, Logger: s.logger})
	if errors.Is(err, scene.ErrUnknownScene) {
		writeError(w, http.StatusNotFound, err)
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	config := sc.Camera
	config.Seed = req.Seed
	if req.Width > 0 {
		config.ImageWidth = req.Width
	}
	if req.Samples > 0 {
		config.SamplesPerPixel = req.Samples
	}
	if req.Depth > 0 {
		config.MaxDepth = req.Depth
	}

	camera, err := renderer.NewCamera(config)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if camera.Width()*camera.Height()*camera.SamplesPerPixel() > maxPixelSamples {
		writeError(w, http.StatusBadRequest, fmt.Errorf("render of %dx%d at %d samples is too large",
			camera.Width(), camera.Height(), camera.SamplesPerPixel()))
		return
	}

	raytracer := renderer.NewRaytracer(camera, renderer.DefaultRenderConfig().WithWorkers(s.workers), s.logger)
	img, stats := raytracer.Render(sc.World)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to encode image: %w", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseRenderRequest parses request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "cornell-box"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 1, 10000); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 0, 1, 1000); err != nil {
		return nil, err
	}
	if seed := values.Get("seed"); seed != "" {
		if req.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", seed)
		}
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
