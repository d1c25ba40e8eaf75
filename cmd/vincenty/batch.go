package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/tidwall/vincenty"
	"github.com/tidwall/vincenty/internal/geojson"
)

const defaultSegments = 16

// BatchInput is the document read by the batch command. JSON input is
// accepted as well since it is parsed as YAML.
type BatchInput struct {
	Inverse []InverseInput `yaml:"inverse"`
	Direct  []DirectInput  `yaml:"direct"`
}

type InverseInput struct {
	Name string    `yaml:"name"`
	From []float64 `yaml:"from"`
	To   []float64 `yaml:"to"`
}

type DirectInput struct {
	Name     string    `yaml:"name"`
	From     []float64 `yaml:"from"`
	Bearing  float64   `yaml:"bearing"`
	Distance float64   `yaml:"distance"`
}

// BatchOutput is the document written by the batch command.
type BatchOutput struct {
	Inverse []InverseOutput `json:"inverse" yaml:"inverse"`
	Direct  []DirectOutput  `json:"direct" yaml:"direct"`
}

type BatchCommand struct {
	Input    string `short:"i" long:"in"       description:"Input file (YAML or JSON). Reads from stdin if empty"`
	Output   string `short:"o" long:"out"      description:"Output file. Writes to stdout if empty"`
	Workers  int    `short:"w" long:"workers"  env:"VINCENTY_WORKERS" description:"Concurrent solvers (overrides config, 0 for GOMAXPROCS)"`
	Segments int    `long:"segments"           description:"Line segments per geodesic in geojson output" default:"16"`

	app   *app
	stdin io.Reader
}

func toPoint(v []float64) (vincenty.Point, error) {
	if len(v) != 2 {
		return vincenty.Point{}, errors.Errorf("coordinate %v must be [lat, lon]", v)
	}
	return vincenty.PointFromDegrees(v[0], v[1]), nil
}

func (in *BatchInput) pairs() ([]vincenty.Pair, error) {
	pairs := make([]vincenty.Pair, len(in.Inverse))
	for i, p := range in.Inverse {
		from, err := toPoint(p.From)
		if err != nil {
			return nil, errors.Wrapf(err, "inverse %d from", i)
		}
		to, err := toPoint(p.To)
		if err != nil {
			return nil, errors.Wrapf(err, "inverse %d to", i)
		}
		pairs[i] = vincenty.Pair{From: from, To: to}
	}
	return pairs, nil
}

func (in *BatchInput) legs() ([]vincenty.Leg, error) {
	legs := make([]vincenty.Leg, len(in.Direct))
	for i, d := range in.Direct {
		from, err := toPoint(d.From)
		if err != nil {
			return nil, errors.Wrapf(err, "direct %d from", i)
		}
		legs[i] = vincenty.Leg{From: from, Bearing: vincenty.Radians(d.Bearing), Distance: d.Distance}
	}
	return legs, nil
}

func (c *BatchCommand) readInput() (*BatchInput, error) {
	var data []byte
	var err error
	if c.Input != "" {
		data, err = os.ReadFile(c.Input)
	} else {
		r := c.stdin
		if r == nil {
			r = os.Stdin
		}
		data, err = io.ReadAll(r)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read input")
	}

	var in BatchInput
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, errors.Wrap(err, "parse input")
	}
	return &in, nil
}

// Execute implements flags.Commander.
func (c *BatchCommand) Execute([]string) error {
	cfg, err := c.app.config()
	if err != nil {
		return err
	}
	in, err := c.readInput()
	if err != nil {
		return err
	}
	pairs, err := in.pairs()
	if err != nil {
		return err
	}
	legs, err := in.legs()
	if err != nil {
		return err
	}

	workers := cfg.Workers
	if c.Workers > 0 {
		workers = c.Workers
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	e := cfg.Surface()
	params := cfg.Params()

	log.Info().
		Int("inverse", len(pairs)).
		Int("direct", len(legs)).
		Int("workers", workers).
		Str("surface", surfaceName(e)).
		Msg("Batch started")

	inverse, err := e.InverseBatch(ctx, pairs, params, workers)
	if err != nil {
		return err
	}
	direct, err := e.DirectBatch(ctx, legs, params, workers)
	if err != nil {
		return err
	}

	out := BatchOutput{
		Inverse: lo.Map(inverse, func(r vincenty.InverseResult, i int) InverseOutput {
			return newInverseOutput(in.Inverse[i].Name, pairs[i], r)
		}),
		Direct: lo.Map(direct, func(r vincenty.DirectResult, i int) DirectOutput {
			return newDirectOutput(in.Direct[i].Name, legs[i], r)
		}),
	}
	for _, o := range out.Inverse {
		warnUnconverged(o.Name, o.Converged, o.Iterations)
	}
	for _, o := range out.Direct {
		warnUnconverged(o.Name, o.Converged, o.Iterations)
	}

	var fc *geojson.FeatureCollection
	if c.app.opts.Format == "geojson" {
		fc = geojson.NewCollection()
		for i, r := range inverse {
			if err := addGeodesic(fc, e, params, pairs[i], r, in.Inverse[i].Name, c.Segments); err != nil {
				return err
			}
		}
		for i, r := range direct {
			addDestination(fc, legs[i], r, in.Direct[i].Name)
		}
	}

	w := c.app.out
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return errors.Wrap(err, "create output")
		}
		defer f.Close()
		w = f
	}
	if err := encode(w, c.app.opts.Format, out, fc); err != nil {
		return err
	}

	unconverged := lo.CountBy(inverse, func(r vincenty.InverseResult) bool { return !r.Converged }) +
		lo.CountBy(direct, func(r vincenty.DirectResult) bool { return !r.Converged })
	log.Info().
		Int("solved", len(inverse)+len(direct)).
		Int("unconverged", unconverged).
		Msg("Batch finished")
	return nil
}

// addGeodesic appends the geodesic of pair as a LineString sampled with the
// direct solver every 1/segments of its length.
func addGeodesic(fc *geojson.FeatureCollection, e vincenty.Ellipsoid, params vincenty.Params,
	pair vincenty.Pair, r vincenty.InverseResult, name string, segments int,
) error {
	if segments < 1 {
		segments = 1
	}
	points := make([]vincenty.Point, 0, segments+1)
	points = append(points, pair.From)
	for k := 1; k < segments; k++ {
		d := r.Distance * float64(k) / float64(segments)
		res, err := e.Direct(pair.From, r.InitialBearing, d, params)
		if err != nil {
			return errors.Wrapf(err, "sample %s", name)
		}
		points = append(points, res.Destination)
	}
	points = append(points, pair.To)

	props := map[string]any{
		"distance":        r.Distance,
		"initial_bearing": vincenty.Degrees(r.InitialBearing),
		"final_bearing":   vincenty.Degrees(r.FinalBearing),
		"converged":       r.Converged,
	}
	if name != "" {
		props["name"] = name
	}
	fc.AddLine(points, props)
	return nil
}

func addDestination(fc *geojson.FeatureCollection, l vincenty.Leg, r vincenty.DirectResult, name string) {
	props := map[string]any{
		"bearing":       vincenty.Degrees(l.Bearing),
		"distance":      l.Distance,
		"final_bearing": vincenty.Degrees(r.FinalBearing),
		"converged":     r.Converged,
	}
	if name != "" {
		props["name"] = name
	}
	fc.AddPoint(r.Destination, props)
}
