package views

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/moviedeck/boxoffice/internal/domain"
	"github.com/moviedeck/boxoffice/internal/imdb"
	"github.com/moviedeck/boxoffice/internal/metrics"
	"github.com/moviedeck/boxoffice/internal/query"
	"github.com/moviedeck/boxoffice/internal/render"
)

// Engine runs the fetch -> pipeline -> render sequence behind the service's
// entry points. The fetcher is caller-owned and injected here; the engine
// keeps no state across invocations, so each call works on its own snapshot.
type Engine struct {
	client  imdb.Client
	metrics *metrics.Registry
	logger  *zap.Logger
}

// New constructs an engine around the given fetcher. Metrics may be nil.
func New(client imdb.Client, reg *metrics.Registry, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{client: client, metrics: reg, logger: logger}
}

// Movies returns the raw upstream snapshot without filtering or rendering.
func (e *Engine) Movies(ctx context.Context) ([]domain.MovieRecord, error) {
	return e.fetch(ctx)
}

// Summaries returns the sorted, limited JSON summary views.
func (e *Engine) Summaries(ctx context.Context, sortKey query.SortKey, limit int) ([]render.SummaryView, error) {
	p := query.Params{Sort: sortKey, Limit: limit}
	records, err := e.run(ctx, p, false)
	if err != nil {
		return nil, err
	}
	out, err := render.Summaries(records)
	if err != nil {
		return nil, err
	}
	e.metrics.ObserveRender("summaries")
	return out, nil
}

// Table returns the sorted, limited plain-text grid.
func (e *Engine) Table(ctx context.Context, sortKey query.SortKey, limit int) (string, error) {
	p := query.Params{Sort: sortKey, Limit: limit}
	records, err := e.run(ctx, p, false)
	if err != nil {
		return "", err
	}
	out, err := render.TextTable(records)
	if err != nil {
		return "", err
	}
	e.metrics.ObserveRender("table")
	return out, nil
}

// RatingTable returns the markup grid of the highest-rated records.
func (e *Engine) RatingTable(ctx context.Context, limit int) (string, error) {
	p := query.Params{Sort: query.SortRating, Limit: limit}
	return e.htmlTable(ctx, p, "top-rated")
}

// GenreTable returns the markup grid of the highest-rated records in genre.
func (e *Engine) GenreTable(ctx context.Context, genre string, limit int) (string, error) {
	p := query.Params{
		Filter: &query.Filter{Key: query.FilterGenre, Value: genre},
		Sort:   query.SortRating,
		Limit:  limit,
	}
	return e.htmlTable(ctx, p, "genre")
}

// HighestOpeningTable returns the markup grid ordered by weekend gross.
func (e *Engine) HighestOpeningTable(ctx context.Context, limit int) (string, error) {
	p := query.Params{Sort: query.SortGross, Limit: limit}
	return e.htmlTable(ctx, p, "highest-opening")
}

func (e *Engine) htmlTable(ctx context.Context, p query.Params, view string) (string, error) {
	// The markup renderer consumes rated records only.
	records, err := e.run(ctx, p, true)
	if err != nil {
		return "", err
	}
	out, err := render.HTMLTable(records)
	if err != nil {
		return "", err
	}
	e.metrics.ObserveRender(view)
	return out, nil
}

// run validates before touching the network, then fetches one snapshot and
// applies the pipeline to it.
func (e *Engine) run(ctx context.Context, p query.Params, ratedOnly bool) ([]domain.MovieRecord, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	records, err := e.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if ratedOnly {
		records = query.Rated(records)
	}
	return query.Apply(records, p)
}

func (e *Engine) fetch(ctx context.Context) ([]domain.MovieRecord, error) {
	start := time.Now()
	records, err := e.client.FetchTopBoxOffice(ctx)
	e.metrics.ObserveFetch(time.Since(start), len(records), err)
	if err != nil {
		e.logger.Warn("upstream fetch failed", zap.Error(err))
		return nil, err
	}
	e.logger.Debug("upstream snapshot fetched",
		zap.Int("records", len(records)),
		zap.Duration("duration", time.Since(start)))
	return records, nil
}
