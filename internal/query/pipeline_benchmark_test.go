package query

import (
	"fmt"
	"testing"

	"github.com/moviedeck/boxoffice/internal/domain"
)

func BenchmarkApply(b *testing.B) {
	records := make([]domain.MovieRecord, 0, 1000)
	for i := 0; i < 1000; i++ {
		r := record(fmt.Sprintf("tt%04d", i), fmt.Sprintf("Movie %04d", i))
		rating := float64(i%100) / 10
		r.AverageRating = &rating
		if i%3 == 0 {
			r.Genres = []string{"Action"}
		}
		records = append(records, r)
	}
	p := Params{
		Filter: &Filter{Key: FilterGenre, Value: "Action"},
		Sort:   SortRating,
		Limit:  10,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Apply(records, p); err != nil {
			b.Fatalf("Apply() error: %v", err)
		}
	}
}
