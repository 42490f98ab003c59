package processor

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoson"
	"github.com/woozymasta/geoson/internal/config"
)

type job struct {
	Doc   config.Document
	Index int
}

// ProcessAll converts docs with up to concurrency workers. Results are
// returned in the order of docs.
func ProcessAll(
	client *http.Client,
	codec geoson.Codec,
	cfg *config.Config,
	docs []config.Document,
	concurrency int,
	force bool,
) []Result {
	if concurrency <= 0 {
		concurrency = 1
	}

	jobs := make(chan job, len(docs))
	results := make([]Result, len(docs))

	go func() {
		for i, d := range docs {
			jobs <- job{Doc: d, Index: i}
		}
		close(jobs)
	}()

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res := ProcessDocument(client, codec, cfg, j.Doc, force)
				if res.Err != nil {
					log.Error().Err(res.Err).Str("document", j.Doc.Name).Msg("Failed to process document")
				}
				results[j.Index] = res
			}
		}()
	}
	wg.Wait()

	return results
}

// Failed counts results carrying an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
