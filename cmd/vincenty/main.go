package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tidwall/vincenty"
	"github.com/tidwall/vincenty/internal/config"
	"github.com/tidwall/vincenty/internal/logger"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile    string  `short:"c" long:"config"         env:"VINCENTY_CONFIG"         description:"Path to configuration file" default:"vincenty.yaml"`
	MaxIterations int     `long:"max-iterations"             env:"VINCENTY_MAX_ITERATIONS" description:"Iteration cap (overrides config)"`
	Tolerance     float64 `long:"tolerance"                  env:"VINCENTY_TOLERANCE"      description:"Convergence tolerance in radians (overrides config)"`
	Spherical     bool    `long:"spherical"                  description:"Use the spherical model instead of the ellipsoid"`
	Format        string  `short:"f" long:"format"          env:"VINCENTY_FORMAT"         description:"Output format" choice:"json" choice:"yaml" choice:"geojson" default:"json"`

	Inverse InverseCommand `command:"inverse" description:"Distance and bearings between two points"`
	Direct  DirectCommand  `command:"direct"  description:"Destination from a start point, bearing and distance"`
	Batch   BatchCommand   `command:"batch"   description:"Solve a file of inverse and direct problems concurrently"`
}

type app struct {
	opts Options
	out  io.Writer
}

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	if err := run(os.Args[1:], os.Stdout); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) {
			if flagsErr.Type == flags.ErrHelp {
				fmt.Fprintln(os.Stdout, flagsErr.Message)
				os.Exit(0)
			}
			fmt.Fprintln(os.Stderr, flagsErr.Message)
			os.Exit(1)
		}
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	a := &app{out: out}
	_, err := newParser(a).ParseArgs(args)
	return err
}

func newParser(a *app) *flags.Parser {
	a.opts.Inverse.app = a
	a.opts.Direct.app = a
	a.opts.Batch.app = a

	parser := flags.NewParser(&a.opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		a.opts.Logger.Setup()
		return cmd.Execute(args)
	}
	return parser
}

// config loads the configuration file and applies command line overrides.
func (a *app) config() (*config.Config, error) {
	cfg, err := config.Load(a.opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if a.opts.MaxIterations != 0 {
		cfg.MaxIterations = a.opts.MaxIterations
	}
	if a.opts.Tolerance != 0 {
		cfg.Tolerance = a.opts.Tolerance
	}
	if a.opts.Spherical {
		cfg.Ellipsoid.Spherical = true
		cfg.Ellipsoid.Flattening = 0
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("config", a.opts.ConfigFile).
		Float64("semi_major_axis", cfg.Ellipsoid.SemiMajorAxis).
		Float64("flattening", cfg.Ellipsoid.Flattening).
		Bool("spherical", cfg.Ellipsoid.Spherical).
		Int("max_iterations", cfg.MaxIterations).
		Float64("tolerance", cfg.Tolerance).
		Msg("Configuration loaded")
	return cfg, nil
}

func warnUnconverged(name string, converged bool, iterations int) {
	if converged {
		return
	}
	log.Warn().
		Str("name", name).
		Int("iterations", iterations).
		Msg("Solution did not converge, returning last estimate")
}

func surfaceName(e vincenty.Ellipsoid) string {
	if e.Spherical() {
		return "sphere"
	}
	return "ellipsoid"
}
