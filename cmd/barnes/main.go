// Command barnes grids GeoJSON point observations with a Barnes objective
// analysis and prints the grid as "lon lat value" lines.
//
// Usage:
//
//	barnes [flags] <observations.geojson>
//
// Examples:
//
//	barnes stations.geojson
//	barnes -passes 4 -gain 0.3 stations.geojson
//	barnes -bbox 140,-60,160,-40 -radii -rms stations.geojson
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	vec2d "github.com/flywave/go3d/float64/vec2"

	barnes "github.com/flywave/go-barnes"
	"github.com/flywave/go-barnes/features"
)

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := newLogger(os.Stderr, cfg.logLevel, cfg.logFormat)

	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}
}

type config struct {
	input     string
	bbox      *vec2d.Rect
	passes    int
	gain      float64
	scale     float64
	radii     bool
	rms       bool
	workers   int
	logLevel  string
	logFormat string
}

func parseFlags(args []string) (*config, error) {
	fs := flag.NewFlagSet("barnes", flag.ContinueOnError)
	cfg := &config{}
	bbox := fs.String("bbox", "", "analysis domain as lonMin,latMin,lonMax,latMax (default: extent of the observations)")
	fs.IntVar(&cfg.passes, "passes", barnes.DefaultPasses, "number of analysis passes")
	fs.Float64Var(&cfg.gain, "gain", barnes.DefaultGain, "scale length factor for passes after the first")
	fs.Float64Var(&cfg.scale, "scale", 0, "Gaussian scale length in grid units (default: recommended)")
	fs.BoolVar(&cfg.radii, "radii", false, "precompute grid to observation distances")
	fs.BoolVar(&cfg.rms, "rms", false, "report residual RMS after every pass")
	fs.IntVar(&cfg.workers, "workers", 0, "worker goroutines (default: GOMAXPROCS)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&cfg.logFormat, "log-format", "text", "log format: text or json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, errors.New("usage: barnes [flags] <observations.geojson>")
	}
	cfg.input = fs.Arg(0)

	if *bbox != "" {
		r, err := parseBBox(*bbox)
		if err != nil {
			return nil, err
		}
		cfg.bbox = &r
	}
	return cfg, nil
}

func parseBBox(s string) (vec2d.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return vec2d.Rect{}, fmt.Errorf("invalid -bbox %q: want lonMin,latMin,lonMax,latMax", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return vec2d.Rect{}, fmt.Errorf("invalid -bbox %q: %w", s, err)
		}
		v[i] = f
	}
	return vec2d.Rect{Min: vec2d.T{v[0], v[1]}, Max: vec2d.T{v[2], v[3]}}, nil
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.ToLower(format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func run(cfg *config, logger *slog.Logger, out io.Writer) error {
	data, err := os.ReadFile(cfg.input)
	if err != nil {
		return err
	}
	obs, err := features.Unmarshal(data)
	if err != nil {
		return err
	}
	logger.Info("observations loaded", "file", cfg.input, "count", obs.Len())

	bounds := obs.Bounds()
	if cfg.bbox != nil {
		bounds = *cfg.bbox
	}

	opts := barnes.Options{
		Observations: obs,
		Bounds:       &bounds,
		Gain:         &cfg.gain,
		Passes:       &cfg.passes,
		UseRadii:     cfg.radii,
		ReportRMS:    cfg.rms,
		Logger:       logger,
	}
	if cfg.scale > 0 {
		opts.ScaleLength = &cfg.scale
	}
	if cfg.workers > 0 {
		opts.Workers = &cfg.workers
	}

	res, err := barnes.NewAnalysis(opts).Process()
	if err != nil {
		return err
	}
	if p := res.Parameters; p != nil {
		logger.Info("recommended parameters",
			"grid_x", p.GridX,
			"grid_y", p.GridY,
			"scale_length", p.ScaleLength,
			"random_data_spacing", p.RandomDataSpacing)
	}
	return writeGrid(out, res.Grid)
}

func writeGrid(out io.Writer, grid *barnes.Grid) error {
	w := bufio.NewWriter(out)
	numLon, numLat := grid.Dims()
	for i := 0; i < numLon; i++ {
		for j := 0; j < numLat; j++ {
			fmt.Fprintf(w, "%g %g %g\n", grid.Lon[i], grid.Lat[j], grid.At(i, j))
		}
	}
	return w.Flush()
}
