package render

import (
	"fmt"

	"github.com/moviedeck/boxoffice/internal/domain"
)

// IncompleteRecordError reports an otherwise-valid record missing a field a
// renderer treats as mandatory for its view.
type IncompleteRecordError struct {
	RecordID string
	Field    string
}

func (e *IncompleteRecordError) Error() string {
	return fmt.Sprintf("record %s missing %s", e.RecordID, e.Field)
}

// SummaryView is the per-record shape of the JSON summary response.
// WeekendGross and Description stay nullable in the output.
type SummaryView struct {
	Title        string   `json:"title"`
	Rating       *float64 `json:"rating"`
	ReleaseDate  string   `json:"releaseDate"`
	WeekendGross *int64   `json:"weekendGross"`
	Description  *string  `json:"description"`
}

// Summaries projects the post-pipeline sequence into summary views, in the
// order given. Title and releaseDate are mandatory for this view; both are
// required at ingestion already, so a failure here is defensive.
func Summaries(records []domain.MovieRecord) ([]SummaryView, error) {
	views := make([]SummaryView, 0, len(records))
	for _, record := range records {
		if record.Title == "" {
			return nil, &IncompleteRecordError{RecordID: record.ID, Field: "title"}
		}
		if record.ReleaseDate == nil || *record.ReleaseDate == "" {
			return nil, &IncompleteRecordError{RecordID: record.ID, Field: "releaseDate"}
		}
		views = append(views, SummaryView{
			Title:        record.Title,
			Rating:       record.AverageRating,
			ReleaseDate:  *record.ReleaseDate,
			WeekendGross: record.WeekendGrossAmount,
			Description:  record.Description,
		})
	}
	return views, nil
}
