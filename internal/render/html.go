package render

import (
	"fmt"
	"html"
	"strconv"

	"github.com/moviedeck/boxoffice/internal/domain"
)

// HTMLTable renders the post-pipeline sequence as a fixed-width grid wrapped
// in a preformatted block. Call sites pre-filter to rating-present records;
// an unrated record reaching this renderer is rejected rather than formatted.
func HTMLTable(records []domain.MovieRecord) (string, error) {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		if record.AverageRating == nil {
			return "", &IncompleteRecordError{RecordID: record.ID, Field: "averageRating"}
		}
		rows = append(rows, []string{
			html.EscapeString(record.Title),
			formatRating(record.AverageRating),
			html.EscapeString(formatGross(record.WeekendGrossAmount, record.WeekendGrossCurrency)),
			formatStartYear(record.StartYear),
			formatRuntime(record.RuntimeMinutes),
		})
	}
	headers := []string{"Title", "Rating", "Gross", "Release", "Runtime"}
	return fmt.Sprintf("<div class=\"boxoffice\">\n<pre>\n%s</pre>\n</div>\n", grid(headers, rows)), nil
}

func formatStartYear(year *int) string {
	if year == nil {
		return placeholder
	}
	return strconv.Itoa(*year)
}

func formatRuntime(minutes *int) string {
	if minutes == nil {
		return placeholder
	}
	return fmt.Sprintf("%d min", *minutes)
}
