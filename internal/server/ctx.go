package server

import (
	"net/http"
	"os"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoson"
	"github.com/woozymasta/geoson/internal/config"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config *config.Config
	Codec  geoson.Codec

	// Paths maps a collection name to the file served for it.
	Paths map[string]string
	Names []string
}

// NewServerContext resolves the file behind every configured document.
// The converted output is preferred, a local input is the fallback.
// Documents with neither on disk are skipped.
func NewServerContext(cfg *config.Config, codec geoson.Codec) *ServerContext {
	log.Info().Int("config_documents_count", len(cfg.Documents)).Msg("Initializing server context")

	paths := make(map[string]string, len(cfg.Documents))
	names := make([]string, 0, len(cfg.Documents))

	for _, doc := range cfg.Documents {
		path := doc.OutputPath()
		if !isFile(path) {
			log.Trace().
				Str("document", doc.Name).
				Str("path", path).
				Msg("Converted output not found, trying input")

			path = doc.Input
			if !isFile(path) {
				log.Warn().
					Str("document", doc.Name).
					Msg("Skipping document: neither output nor input found")
				continue
			}
		}

		paths[doc.Name] = path
		names = append(names, doc.Name)

		log.Debug().
			Str("document", doc.Name).
			Str("path", path).
			Msg("Document added to context")
	}

	slices.Sort(names)

	log.Info().
		Int("valid_documents_count", len(names)).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config: cfg,
		Codec:  codec,
		Paths:  paths,
		Names:  names,
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Routes returns the service handler wrapped in request logging.
func (s *ServerContext) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/collections", s.HandleCollectionsList)
	mux.HandleFunc("/collections/", s.HandleCollection)

	return RequestLogger(mux)
}
