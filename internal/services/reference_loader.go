package services

import (
	"context"
	"sync"
	"time"

	"github.com/checkfox/go_carprice/internal/logger"
	"github.com/checkfox/go_carprice/internal/models"
)

// ListFetcher loads a single reference list from the backend
type ListFetcher interface {
	FetchList(ctx context.Context, list models.ReferenceList) ([]string, error)
}

// ReferenceDataLoader loads the three reference lists used to populate form choices
type ReferenceDataLoader struct {
	fetcher ListFetcher
}

// NewReferenceDataLoader creates a new ReferenceDataLoader
func NewReferenceDataLoader(fetcher ListFetcher) *ReferenceDataLoader {
	return &ReferenceDataLoader{
		fetcher: fetcher,
	}
}

// listOutcome is the settled result of one fetch
type listOutcome struct {
	values []string
	err    error
}

// Load fetches all reference lists concurrently and waits for every one to settle.
// A failed list is reduced to empty and marks the snapshot as failed; it never
// cancels the other fetches.
func (l *ReferenceDataLoader) Load(ctx context.Context) models.OptionSnapshot {
	startTime := time.Now()
	lists := models.AllReferenceLists()
	outcomes := make([]listOutcome, len(lists))

	var wg sync.WaitGroup
	for i, list := range lists {
		wg.Add(1)
		go func(i int, list models.ReferenceList) {
			defer wg.Done()
			values, err := l.fetcher.FetchList(ctx, list)
			outcomes[i] = listOutcome{values: values, err: err}
		}(i, list)
	}
	wg.Wait()

	reduced := make(map[models.ReferenceList][]string, len(lists))
	loadFailed := false
	for i, list := range lists {
		outcome := outcomes[i]
		if outcome.err != nil {
			logger.LogError(ctx, "Failed to load reference list", outcome.err, "list", list.String())
			reduced[list] = []string{}
			loadFailed = true
			continue
		}
		if outcome.values == nil {
			outcome.values = []string{}
		}
		reduced[list] = outcome.values
	}

	logger.Info(ctx, "Reference lists loaded",
		"brands", len(reduced[models.ReferenceListBrands]),
		"fuel_types", len(reduced[models.ReferenceListFuelTypes]),
		"transmissions", len(reduced[models.ReferenceListTransmissions]),
		"load_failed", loadFailed)
	logger.LogSlowOperation(ctx, "load_reference_lists", time.Since(startTime))

	return models.NewOptionSnapshot(
		reduced[models.ReferenceListBrands],
		reduced[models.ReferenceListFuelTypes],
		reduced[models.ReferenceListTransmissions],
		loadFailed,
	)
}
