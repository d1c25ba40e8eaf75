package main

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/tidwall/vincenty"
	"github.com/tidwall/vincenty/internal/geojson"
)

// Coord is a "LAT,LON" command line value in degrees.
type Coord [2]float64

// UnmarshalFlag implements flags.Unmarshaler.
func (c *Coord) UnmarshalFlag(value string) error {
	latStr, lonStr, ok := strings.Cut(value, ",")
	if !ok {
		return errors.Errorf("coordinate %q must be LAT,LON", value)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return errors.Wrapf(err, "latitude in %q", value)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return errors.Wrapf(err, "longitude in %q", value)
	}
	*c = Coord{lat, lon}
	return nil
}

// MarshalFlag implements flags.Marshaler.
func (c Coord) MarshalFlag() (string, error) {
	return strconv.FormatFloat(c[0], 'g', -1, 64) + "," + strconv.FormatFloat(c[1], 'g', -1, 64), nil
}

func (c Coord) Point() vincenty.Point {
	return vincenty.PointFromDegrees(c[0], c[1])
}

func coordOf(p vincenty.Point) Coord {
	lat, lon := p.Degrees()
	return Coord{lat, lon}
}

// InverseOutput is an inverse solution in degrees and meters.
type InverseOutput struct {
	Name           string  `json:"name,omitempty" yaml:"name,omitempty"`
	From           Coord   `json:"from" yaml:"from,flow"`
	To             Coord   `json:"to" yaml:"to,flow"`
	Distance       float64 `json:"distance" yaml:"distance"`
	InitialBearing float64 `json:"initial_bearing" yaml:"initial_bearing"`
	FinalBearing   float64 `json:"final_bearing" yaml:"final_bearing"`
	Iterations     int     `json:"iterations" yaml:"iterations"`
	Converged      bool    `json:"converged" yaml:"converged"`
}

// DirectOutput is a direct solution in degrees and meters.
type DirectOutput struct {
	Name         string  `json:"name,omitempty" yaml:"name,omitempty"`
	From         Coord   `json:"from" yaml:"from,flow"`
	Bearing      float64 `json:"bearing" yaml:"bearing"`
	Distance     float64 `json:"distance" yaml:"distance"`
	Destination  Coord   `json:"destination" yaml:"destination,flow"`
	FinalBearing float64 `json:"final_bearing" yaml:"final_bearing"`
	Iterations   int     `json:"iterations" yaml:"iterations"`
	Converged    bool    `json:"converged" yaml:"converged"`
}

func newInverseOutput(name string, p vincenty.Pair, r vincenty.InverseResult) InverseOutput {
	return InverseOutput{
		Name:           name,
		From:           coordOf(p.From),
		To:             coordOf(p.To),
		Distance:       r.Distance,
		InitialBearing: vincenty.Degrees(r.InitialBearing),
		FinalBearing:   vincenty.Degrees(r.FinalBearing),
		Iterations:     r.Iterations,
		Converged:      r.Converged,
	}
}

func newDirectOutput(name string, l vincenty.Leg, r vincenty.DirectResult) DirectOutput {
	return DirectOutput{
		Name:         name,
		From:         coordOf(l.From),
		Bearing:      vincenty.Degrees(l.Bearing),
		Distance:     l.Distance,
		Destination:  coordOf(r.Destination),
		FinalBearing: vincenty.Degrees(r.FinalBearing),
		Iterations:   r.Iterations,
		Converged:    r.Converged,
	}
}

type InverseCommand struct {
	From Coord `long:"from" description:"Start point LAT,LON in degrees" required:"true"`
	To   Coord `long:"to"   description:"End point LAT,LON in degrees"   required:"true"`

	app *app
}

// Execute implements flags.Commander.
func (c *InverseCommand) Execute([]string) error {
	cfg, err := c.app.config()
	if err != nil {
		return err
	}
	e := cfg.Surface()
	pair := vincenty.Pair{From: c.From.Point(), To: c.To.Point()}
	res, err := e.Inverse(pair.From, pair.To, cfg.Params())
	if err != nil {
		return err
	}
	warnUnconverged("", res.Converged, res.Iterations)
	log.Debug().Str("surface", surfaceName(e)).Int("iterations", res.Iterations).Msg("Inverse solved")

	var fc *geojson.FeatureCollection
	if c.app.opts.Format == "geojson" {
		fc = geojson.NewCollection()
		if err := addGeodesic(fc, e, cfg.Params(), pair, res, "", defaultSegments); err != nil {
			return err
		}
	}
	return encode(c.app.out, c.app.opts.Format, newInverseOutput("", pair, res), fc)
}

type DirectCommand struct {
	From     Coord   `long:"from"     description:"Start point LAT,LON in degrees" required:"true"`
	Bearing  float64 `long:"bearing"  description:"Initial bearing in degrees clockwise from north" required:"true"`
	Distance float64 `long:"distance" description:"Distance in meters" required:"true"`

	app *app
}

// Execute implements flags.Commander.
func (c *DirectCommand) Execute([]string) error {
	cfg, err := c.app.config()
	if err != nil {
		return err
	}
	e := cfg.Surface()
	leg := vincenty.Leg{From: c.From.Point(), Bearing: vincenty.Radians(c.Bearing), Distance: c.Distance}
	res, err := e.Direct(leg.From, leg.Bearing, leg.Distance, cfg.Params())
	if err != nil {
		return err
	}
	warnUnconverged("", res.Converged, res.Iterations)
	log.Debug().Str("surface", surfaceName(e)).Int("iterations", res.Iterations).Msg("Direct solved")

	var fc *geojson.FeatureCollection
	if c.app.opts.Format == "geojson" {
		fc = geojson.NewCollection()
		addDestination(fc, leg, res, "")
	}
	return encode(c.app.out, c.app.opts.Format, newDirectOutput("", leg, res), fc)
}

// encode writes v as JSON or YAML, or fc when the format is geojson.
func encode(w io.Writer, format string, v any, fc *geojson.FeatureCollection) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return errors.Wrap(enc.Close(), "encode yaml")
	case "geojson":
		v = fc
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encode json")
}
