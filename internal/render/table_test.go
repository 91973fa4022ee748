package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/moviedeck/boxoffice/internal/domain"
)

func ratedRecord(id, title string) domain.MovieRecord {
	return domain.MovieRecord{
		ID:            id,
		Title:         title,
		OriginalTitle: title,
		ReleaseDate:   sptr("2024-05-10"),
		AverageRating: fptr(7.25),
		Description:   sptr("Short description."),
	}
}

func TestTextTableFormatting(t *testing.T) {
	r := ratedRecord("tt1", "Dune")
	r.WeekendGrossAmount = iptr(1234567)
	r.WeekendGrossCurrency = sptr("USD")

	out, err := TextTable([]domain.MovieRecord{r})
	if err != nil {
		t.Fatalf("TextTable() unexpected error: %v", err)
	}

	for _, want := range []string{
		"Title", "Rating", "Release Date", "Weekend Gross", "Description",
		"Dune", "7.2", "2024-05-10", "1,234,567 USD", "Short description.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextTableAbsentGross(t *testing.T) {
	r := ratedRecord("tt1", "Indie Film")

	out, err := TextTable([]domain.MovieRecord{r})
	if err != nil {
		t.Fatalf("TextTable() unexpected error: %v", err)
	}
	if !strings.Contains(out, "N/A") {
		t.Fatalf("absent gross should render N/A:\n%s", out)
	}
}

func TestTextTableTruncatesDescription(t *testing.T) {
	r := ratedRecord("tt1", "Long One")
	long := strings.Repeat("a", 60)
	r.Description = &long

	out, err := TextTable([]domain.MovieRecord{r})
	if err != nil {
		t.Fatalf("TextTable() unexpected error: %v", err)
	}
	want := strings.Repeat("a", 50) + "..."
	if !strings.Contains(out, want) {
		t.Fatalf("output missing truncated description %q:\n%s", want, out)
	}
	if strings.Contains(out, strings.Repeat("a", 51)) {
		t.Fatalf("description not truncated at 50 runes:\n%s", out)
	}
}

func TestTextTableMissingDescription(t *testing.T) {
	r := ratedRecord("tt1", "No Description")
	r.Description = nil

	_, err := TextTable([]domain.MovieRecord{r})
	var incomplete *IncompleteRecordError
	if !errors.As(err, &incomplete) {
		t.Fatalf("TextTable() error = %v, want IncompleteRecordError", err)
	}
	if incomplete.Field != "description" || incomplete.RecordID != "tt1" {
		t.Fatalf("unexpected error detail: %+v", incomplete)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short", "hello", "hello"},
		{"exact", strings.Repeat("x", 50), strings.Repeat("x", 50)},
		{"long", strings.Repeat("x", 51), strings.Repeat("x", 50) + "..."},
		{"multibyte", strings.Repeat("é", 55), strings.Repeat("é", 50) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, descriptionMax); got != tt.want {
				t.Fatalf("truncate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatGross(t *testing.T) {
	tests := []struct {
		name     string
		amount   *int64
		currency *string
		want     string
	}{
		{"absent", nil, nil, "N/A"},
		{"no currency", iptr(999), nil, "999"},
		{"grouped usd", iptr(62785337), sptr("USD"), "62,785,337 USD"},
		{"grouped eur", iptr(1000), sptr("EUR"), "1,000 EUR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatGross(tt.amount, tt.currency); got != tt.want {
				t.Fatalf("formatGross = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatRating(t *testing.T) {
	if got := formatRating(fptr(8.0)); got != "8.0" {
		t.Fatalf("formatRating(8.0) = %q, want 8.0", got)
	}
	if got := formatRating(fptr(7.25)); got != "7.2" {
		t.Fatalf("formatRating(7.25) = %q, want 7.2", got)
	}
	if got := formatRating(nil); got != "N/A" {
		t.Fatalf("formatRating(nil) = %q, want N/A", got)
	}
}
