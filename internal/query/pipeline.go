package query

import (
	"fmt"
	"sort"

	"github.com/moviedeck/boxoffice/internal/domain"
)

// SortKey selects the comparator applied by Apply.
type SortKey string

const (
	SortRating  SortKey = "rating"  // averageRating, descending, absent last
	SortGross   SortKey = "gross"   // weekendGrossAmount, descending, absent last
	SortRelease SortKey = "release" // releaseDate string ordering, descending, absent last
	SortTitle   SortKey = "title"   // title, ascending, case-sensitive ordinal
)

const (
	// DefaultLimit applies when the caller supplies no limit.
	DefaultLimit = 5
	// MaxLimit is the hard cap; larger caller limits are clamped, not rejected.
	MaxLimit = 10
)

// InvalidQueryError reports a caller-supplied sort key, filter key, or limit
// outside the accepted domain. It is detectable from input alone and raised
// before any upstream call.
type InvalidQueryError struct {
	Field  string
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// FilterGenre is the only supported filter key.
const FilterGenre = "genre"

// Filter is a single field/value predicate over a record.
type Filter struct {
	Key   string
	Value string
}

// Params bundles one pipeline invocation's filter, sort key, and limit.
type Params struct {
	Filter *Filter
	Sort   SortKey
	Limit  int
}

// Validate rejects parameters outside the accepted domain. A limit above
// MaxLimit is legal (Apply clamps it); a limit below 1 is not.
func (p Params) Validate() error {
	switch p.Sort {
	case SortRating, SortGross, SortRelease, SortTitle:
	default:
		return &InvalidQueryError{
			Field:  "sort",
			Reason: fmt.Sprintf("unsupported sort key %q", string(p.Sort)),
		}
	}
	if p.Limit < 1 {
		return &InvalidQueryError{Field: "limit", Reason: "must be at least 1"}
	}
	if p.Filter != nil {
		if p.Filter.Key != FilterGenre {
			return &InvalidQueryError{
				Field:  "filter",
				Reason: fmt.Sprintf("unsupported filter key %q", p.Filter.Key),
			}
		}
		if p.Filter.Value == "" {
			return &InvalidQueryError{Field: "filter", Reason: "genre value must not be empty"}
		}
	}
	return nil
}

// Apply runs filter -> sort -> limit over the snapshot and returns a new
// slice of the surviving records. The input is never reordered or mutated;
// ties keep their relative snapshot order for every sort key.
func Apply(records []domain.MovieRecord, p Params) ([]domain.MovieRecord, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	out := make([]domain.MovieRecord, 0, len(records))
	for _, record := range records {
		if p.Filter != nil && !record.HasGenre(p.Filter.Value) {
			continue
		}
		out = append(out, record)
	}

	less := comparator(p.Sort)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})

	limit := p.Limit
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Rated returns the records carrying an averageRating, preserving order.
// The markup table views consume rated records only.
func Rated(records []domain.MovieRecord) []domain.MovieRecord {
	out := make([]domain.MovieRecord, 0, len(records))
	for _, record := range records {
		if record.AverageRating != nil {
			out = append(out, record)
		}
	}
	return out
}

func comparator(key SortKey) func(a, b domain.MovieRecord) bool {
	switch key {
	case SortGross:
		return func(a, b domain.MovieRecord) bool {
			return grossOf(a) > grossOf(b)
		}
	case SortRelease:
		return func(a, b domain.MovieRecord) bool {
			return releaseOf(a) > releaseOf(b)
		}
	case SortTitle:
		return func(a, b domain.MovieRecord) bool {
			return a.Title < b.Title
		}
	default:
		return func(a, b domain.MovieRecord) bool {
			return ratingOf(a) > ratingOf(b)
		}
	}
}

// Absent values sort as the zero of their key so they land last under the
// descending comparators.

func ratingOf(r domain.MovieRecord) float64 {
	if r.AverageRating == nil {
		return 0
	}
	return *r.AverageRating
}

func grossOf(r domain.MovieRecord) int64 {
	if r.WeekendGrossAmount == nil {
		return 0
	}
	return *r.WeekendGrossAmount
}

func releaseOf(r domain.MovieRecord) string {
	if r.ReleaseDate == nil {
		return ""
	}
	return *r.ReleaseDate
}
