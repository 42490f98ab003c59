package main

import (
	"net/http"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoson/internal/config"
	"github.com/woozymasta/geoson/internal/logger"
	"github.com/woozymasta/geoson/internal/processor"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string   `short:"c" long:"config"      env:"CONFIG_FILE"   description:"Path to configuration file" default:"config.yaml"`
	Limit       []string `short:"l" long:"limit"       env:"LIMIT_NAMES"   description:"Limit processing to specific document names"`
	Concurrency int      `short:"p" long:"concurrency" env:"CONCURRENCY"   description:"Concurrency" default:"4"`
	Force       bool     `short:"f" long:"force"       description:"Force overwrite of existing files"`
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

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	codec, err := cfg.Codec()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure codec")
	}

	client := &http.Client{Timeout: 15 * time.Second}

	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}

	// Filter documents if limit is set
	docs := cfg.Documents
	if len(opts.Limit) > 0 {
		docs = make([]config.Document, 0, len(opts.Limit))
		seen := make(map[string]bool)

		for _, limitName := range opts.Limit {
			if seen[limitName] {
				continue
			}
			seen[limitName] = true

			if doc, ok := cfg.Document(limitName); ok {
				docs = append(docs, doc)
			} else {
				log.Error().
					Str("name", limitName).
					Msg("Document specified in --limit not found in configuration")
			}
		}
	}

	log.Info().
		Int("documents_total", len(cfg.Documents)).
		Int("documents_queued", len(docs)).
		Int("concurrency", opts.Concurrency).
		Msg("Starting batch conversion")

	results := processor.ProcessAll(client, codec, cfg, docs, opts.Concurrency, opts.Force)

	skipped := 0
	for _, res := range results {
		if res.Skipped {
			skipped++
		}
	}

	failed := processor.Failed(results)
	log.Info().
		Int("converted", len(results)-failed-skipped).
		Int("skipped", skipped).
		Int("failed", failed).
		Msg("Batch conversion finished")

	if failed > 0 {
		os.Exit(1)
	}
}
