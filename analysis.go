package barnes

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"gonum.org/v1/gonum/mat"
)

const (
	DefaultScaleLength = 10.0
	DefaultGain        = 1.0
	DefaultPasses      = 3
)

// Start selects how the first estimate of the grid is produced.
type Start interface {
	isStart()
}

// ColdStart builds the first estimate from the observations alone.
type ColdStart struct{}

// WarmStart starts from a first guess field, e.g. a model background,
// with one row per longitude and one column per latitude. NaN cells are
// replaced by the mean of the observations. The first guess is not
// modified.
type WarmStart struct {
	FirstGuess mat.Matrix
}

func (ColdStart) isStart() {}
func (WarmStart) isStart() {}

// Options configure an Analysis. Exactly one of Axes and Bounds must be
// set. With Bounds, the grid and (unless ScaleLength is set) the scale
// length come from RecommendedParameters.
type Options struct {
	Observations Observations
	Axes         *Axes
	Bounds       *vec2d.Rect
	Start        Start

	// ScaleLength is the Gaussian scale length in grid units.
	ScaleLength *float64
	// Gain scales ScaleLength after the first pass, typically 0.2 to 1.0.
	Gain *float64
	// Passes is 3 for most fields, 4 where derivatives matter and 2 for a
	// quick look.
	Passes *int

	// UseRadii precomputes every grid point to observation distance once
	// per analysis instead of once per pass.
	UseRadii bool
	// ReportRMS computes residuals after the final pass as well, so
	// Result.RMS has one entry per pass.
	ReportRMS bool

	Workers *int
	Logger  *slog.Logger
}

// Result is the output of one Analysis.Process call.
type Result struct {
	Grid *Grid
	// Parameters is set when the grid was derived from Options.Bounds.
	Parameters *AnalysisParameters
	// ScaleLength is the scale length of the first pass, in grid units.
	ScaleLength float64
	// RMS[p-1] is the residual RMS after pass p, for every pass whose
	// residuals were computed.
	RMS []float64
}

// Analysis is a Barnes objective analysis of scattered observations onto
// a regular grid. Process may be called more than once; separate
// Analysis values may run concurrently.
type Analysis struct {
	obs         Observations
	axes        *Axes
	bounds      *vec2d.Rect
	start       Start
	scaleLength *float64
	gain        float64
	passes      int
	useRadii    bool
	reportRMS   bool
	workers     int
	logger      *slog.Logger
}

func NewAnalysis(opts Options) *Analysis {
	a := &Analysis{
		obs:         opts.Observations,
		axes:        opts.Axes,
		bounds:      opts.Bounds,
		start:       opts.Start,
		scaleLength: opts.ScaleLength,
		gain:        DefaultGain,
		passes:      DefaultPasses,
		useRadii:    opts.UseRadii,
		reportRMS:   opts.ReportRMS,
		workers:     runtime.GOMAXPROCS(0),
		logger:      opts.Logger,
	}

	switch s := a.start.(type) {
	case nil:
		a.start = ColdStart{}
	case *WarmStart:
		if s != nil {
			a.start = *s
		}
	}
	if opts.Gain != nil {
		a.gain = *opts.Gain
	}
	if opts.Passes != nil {
		a.passes = *opts.Passes
	}
	if opts.Workers != nil {
		a.workers = *opts.Workers
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

func (a *Analysis) Process() (*Result, error) {
	axes, scaleLength, params, err := a.domain()
	if err != nil {
		return nil, err
	}

	numLon, numLat := axes.Dims()
	kn := newKernel(axes, a.obs, a.useRadii, a.workers)
	res := &Result{Parameters: params, ScaleLength: scaleLength}
	residuals := make([]float64, len(a.obs))

	var grid *mat.Dense
	switch s := a.start.(type) {
	case WarmStart:
		grid = fillNaN(s.FirstGuess, a.obs.Mean())
		kn.residuals(grid, residuals)
		kn.correct(grid, residuals, scaleLength)
	default:
		grid = kn.passOne(scaleLength)
	}
	a.afterPass(kn, grid, residuals, res, 1, scaleLength)

	scaleLength *= a.gain
	for pass := 2; pass <= a.passes; pass++ {
		kn.correct(grid, residuals, scaleLength)
		a.afterPass(kn, grid, residuals, res, pass, scaleLength)
	}

	if a.reportRMS && len(res.RMS) > 0 {
		a.logger.Info("barnes analysis complete",
			"grid", fmt.Sprintf("%dx%d", numLon, numLat),
			"observations", len(a.obs),
			"passes", a.passes,
			"rms", res.RMS[len(res.RMS)-1])
	}

	res.Grid = &Grid{
		Lon:    append([]float64(nil), axes.Lon...),
		Lat:    append([]float64(nil), axes.Lat...),
		Values: grid,
	}
	return res, nil
}

// afterPass re-samples the residuals unless nothing will consume them.
func (a *Analysis) afterPass(kn *kernel, grid *mat.Dense, residuals []float64, res *Result, pass int, scaleLength float64) {
	if pass >= a.passes && !a.reportRMS {
		a.logger.Debug("barnes pass", "pass", pass, "scale_length", scaleLength)
		return
	}
	kn.residuals(grid, residuals)
	rms := RMS(residuals)
	res.RMS = append(res.RMS, rms)
	a.logger.Debug("barnes pass", "pass", pass, "scale_length", scaleLength, "rms", rms)
}

// domain validates the options and resolves the target axes and the
// first pass scale length.
func (a *Analysis) domain() (Axes, float64, *AnalysisParameters, error) {
	if len(a.obs) == 0 {
		return Axes{}, 0, nil, fmt.Errorf("%w: no observations", ErrInvalidInput)
	}
	if a.passes < 1 {
		return Axes{}, 0, nil, fmt.Errorf("%w: passes must be at least 1, got %d", ErrInvalidInput, a.passes)
	}
	if !positive(a.gain) {
		return Axes{}, 0, nil, fmt.Errorf("%w: gain must be positive, got %g", ErrInvalidInput, a.gain)
	}
	if a.workers < 1 {
		return Axes{}, 0, nil, fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidInput, a.workers)
	}

	var (
		axes        Axes
		scaleLength = DefaultScaleLength
		params      *AnalysisParameters
	)
	switch {
	case a.axes != nil && a.bounds != nil:
		return Axes{}, 0, nil, fmt.Errorf("%w: set either axes or bounds, not both", ErrInvalidInput)
	case a.axes != nil:
		if err := a.axes.Validate(); err != nil {
			return Axes{}, 0, nil, err
		}
		axes = *a.axes
	case a.bounds != nil:
		p, err := RecommendedParameters(*a.bounds, a.obs)
		if err != nil {
			return Axes{}, 0, nil, err
		}
		params = &p
		axes = p.Axes()
		scaleLength = p.ScaleLength
	default:
		return Axes{}, 0, nil, fmt.Errorf("%w: no target axes or bounds", ErrInvalidInput)
	}

	if a.scaleLength != nil {
		scaleLength = *a.scaleLength
	}
	if !positive(scaleLength) {
		return Axes{}, 0, nil, fmt.Errorf("%w: scale length must be positive, got %g", ErrInvalidInput, scaleLength)
	}

	if ws, ok := a.start.(WarmStart); ok {
		if ws.FirstGuess == nil {
			return Axes{}, 0, nil, fmt.Errorf("%w: warm start without a first guess", ErrInvalidInput)
		}
		numLon, numLat := axes.Dims()
		if r, c := ws.FirstGuess.Dims(); r != numLon || c != numLat {
			return Axes{}, 0, nil, fmt.Errorf("%w: first guess is %dx%d, grid is %dx%d", ErrInvalidInput, r, c, numLon, numLat)
		}
	}
	return axes, scaleLength, params, nil
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

// Point2Grid is a cold start analysis of obs onto axes.
func Point2Grid(axes Axes, obs Observations, scaleLength, gain float64, passes int) (*Grid, error) {
	res, err := NewAnalysis(Options{
		Observations: obs,
		Axes:         &axes,
		ScaleLength:  &scaleLength,
		Gain:         &gain,
		Passes:       &passes,
	}).Process()
	if err != nil {
		return nil, err
	}
	return res.Grid, nil
}

// PointDifferences returns, for every observation, the observed value
// minus grid interpolated at its location. Nothing is modified.
func PointDifferences(axes Axes, obs Observations, grid mat.Matrix) ([]float64, error) {
	if err := axes.Validate(); err != nil {
		return nil, err
	}
	numLon, numLat := axes.Dims()
	if r, c := grid.Dims(); r != numLon || c != numLat {
		return nil, fmt.Errorf("%w: grid is %dx%d, axes are %dx%d", ErrInvalidInput, r, c, numLon, numLat)
	}
	kn := &kernel{numLon: numLon, numLat: numLat, gu: gridUnits(axes, obs), values: obs.Values()}
	return kn.residuals(grid, make([]float64, len(obs))), nil
}
