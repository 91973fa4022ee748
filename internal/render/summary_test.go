package render

import (
	"errors"
	"testing"

	"github.com/moviedeck/boxoffice/internal/domain"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int64) *int64     { return &v }
func sptr(v string) *string   { return &v }

func TestSummaries(t *testing.T) {
	records := []domain.MovieRecord{
		{
			ID:                 "tt1",
			Title:              "Inception",
			OriginalTitle:      "Inception",
			ReleaseDate:        sptr("2010-07-16"),
			AverageRating:      fptr(8.8),
			WeekendGrossAmount: iptr(62785337),
			Description:        sptr("A thief who steals corporate secrets."),
		},
		{
			ID:            "tt2",
			Title:         "Quiet Film",
			OriginalTitle: "Quiet Film",
			ReleaseDate:   sptr("2024-02-01"),
		},
	}

	views, err := Summaries(records)
	if err != nil {
		t.Fatalf("Summaries() unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("len = %d, want 2", len(views))
	}
	if views[0].Title != "Inception" || views[0].ReleaseDate != "2010-07-16" {
		t.Fatalf("first view mismatch: %+v", views[0])
	}
	if views[0].WeekendGross == nil || *views[0].WeekendGross != 62785337 {
		t.Fatalf("weekendGross = %v, want 62785337", views[0].WeekendGross)
	}
	// Absent optionals stay nil in the view, not zeroed.
	if views[1].Rating != nil || views[1].WeekendGross != nil || views[1].Description != nil {
		t.Fatalf("absent fields not nil: %+v", views[1])
	}
}

func TestSummariesMissingReleaseDate(t *testing.T) {
	records := []domain.MovieRecord{
		{ID: "tt1", Title: "No Date", OriginalTitle: "No Date"},
	}

	_, err := Summaries(records)
	var incomplete *IncompleteRecordError
	if !errors.As(err, &incomplete) {
		t.Fatalf("Summaries() error = %v, want IncompleteRecordError", err)
	}
	if incomplete.Field != "releaseDate" {
		t.Fatalf("field = %q, want releaseDate", incomplete.Field)
	}
}

func TestSummariesPreservesOrder(t *testing.T) {
	records := []domain.MovieRecord{
		{ID: "tt2", Title: "B", OriginalTitle: "B", ReleaseDate: sptr("2024-01-01")},
		{ID: "tt1", Title: "A", OriginalTitle: "A", ReleaseDate: sptr("2024-01-02")},
	}

	views, err := Summaries(records)
	if err != nil {
		t.Fatalf("Summaries() unexpected error: %v", err)
	}
	if views[0].Title != "B" || views[1].Title != "A" {
		t.Fatalf("order changed: %v", []string{views[0].Title, views[1].Title})
	}
}
