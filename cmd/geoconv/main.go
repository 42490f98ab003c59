package main

import (
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoson"
	"github.com/woozymasta/geoson/frame"
	"github.com/woozymasta/geoson/internal/logger"
	"github.com/woozymasta/geoson/internal/processor"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input     string    `short:"i" long:"in"        description:"Input GeoJSON file path. Reads from stdin if empty"`
	Output    string    `short:"o" long:"out"       description:"Output file path. Writes to stdout if empty"`
	Format    string    `short:"f" long:"format"    description:"Output format" choice:"geojson" choice:"standard" choice:"yaml" choice:"summary" default:"geojson"`
	CRS       string    `short:"c" long:"crs"       description:"Output CRS label (EPSG:4326, WGS84, ENU, ...). Keeps the declared CRS if empty"`
	Transform string    `short:"t" long:"transform" env:"GEOSON_TRANSFORM" description:"Geodetic/local transform" choice:"tangent" choice:"ellipsoid" default:"tangent"`
	Datum     []float64 `short:"d" long:"datum"     description:"Re-anchor at this datum, repeat three times: lat, lon, alt"`
	Strict    bool      `short:"s" long:"strict"    description:"Reject null geometries, polygon holes and unknown geometry types"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	if len(opts.Datum) != 0 && len(opts.Datum) != 3 {
		log.Fatal().Int("values", len(opts.Datum)).Msg("--datum must be given exactly three times")
	}

	transform, err := frame.ByName(opts.Transform)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid transform")
	}
	codec := geoson.NewCodec().WithTransformer(transform).WithStrict(opts.Strict)

	// Read Input
	var inputData []byte
	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
	} else {
		inputData, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read input")
	}

	fc, err := codec.Parse(inputData)
	if err != nil {
		log.Fatal().Err(err).Str("input", opts.Input).Msg("Failed to parse input")
	}

	if len(opts.Datum) == 3 {
		fc.Reanchor(frame.Datum{Lat: opts.Datum[0], Lon: opts.Datum[1], Alt: opts.Datum[2]}, transform)
	}

	flavor := fc.Flavor
	if opts.CRS != "" {
		if flavor, err = geoson.ResolveCRS(opts.CRS); err != nil {
			log.Fatal().Err(err).Msg("Invalid output CRS")
		}
	}

	outputData, _, err := processor.Encode(codec, fc, flavor, opts.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode output")
	}

	if opts.Output == "" {
		if _, err := os.Stdout.Write(outputData); err != nil {
			log.Fatal().Err(err).Msg("Failed to write output")
		}
		return
	}

	if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
		log.Fatal().Err(err).Msg("Failed to write output file")
	}

	log.Info().
		Int("features", len(fc.Features)).
		Str("out", opts.Output).
		Str("crs", flavor.Label()).
		Str("format", opts.Format).
		Msg("Successfully converted feature collection")
}
