package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/moviedeck/boxoffice/internal/domain"
)

const (
	descriptionMax = 50
	placeholder    = "N/A"
)

var groupingPrinter = message.NewPrinter(language.English)

// TextTable renders the post-pipeline sequence as a fixed-column plain-text
// grid. Description is mandatory for this view; the other renderers treat it
// as optional.
func TextTable(records []domain.MovieRecord) (string, error) {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		if record.Description == nil || *record.Description == "" {
			return "", &IncompleteRecordError{RecordID: record.ID, Field: "description"}
		}
		rows = append(rows, []string{
			record.Title,
			formatRating(record.AverageRating),
			formatReleaseDate(record.ReleaseDate),
			formatGross(record.WeekendGrossAmount, record.WeekendGrossCurrency),
			truncate(*record.Description, descriptionMax),
		})
	}
	headers := []string{"Title", "Rating", "Release Date", "Weekend Gross", "Description"}
	return grid(headers, rows), nil
}

// grid lays out headers and rows as aligned columns.
func grid(headers []string, rows [][]string) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
	return buf.String()
}

func formatRating(rating *float64) string {
	if rating == nil {
		return placeholder
	}
	return fmt.Sprintf("%.1f", *rating)
}

func formatReleaseDate(date *string) string {
	if date == nil || *date == "" {
		return placeholder
	}
	return *date
}

// formatGross groups the amount by thousands and appends the ISO currency
// code when the record carries one.
func formatGross(amount *int64, currency *string) string {
	if amount == nil {
		return placeholder
	}
	grouped := groupingPrinter.Sprintf("%d", *amount)
	if currency == nil || *currency == "" {
		return grouped
	}
	return grouped + " " + *currency
}

// truncate caps text at max runes, marking the cut with an ellipsis.
func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
