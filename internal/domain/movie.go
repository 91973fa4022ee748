package domain

// ProductionCompany identifies one company credited on a record.
type ProductionCompany struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MovieRecord is the normalized box-office entry for one title, built once
// from the upstream payload. Optional fields are pointers (or nil slices);
// absent means nil, never a silently coerced zero. A record is immutable
// after construction: the pipeline only produces new orderings over the
// same snapshot.
type MovieRecord struct {
	ID                    string              `json:"id"`
	URL                   *string             `json:"url,omitempty"`
	Title                 string              `json:"primaryTitle"`
	OriginalTitle         string              `json:"originalTitle"`
	Type                  *string             `json:"type,omitempty"`
	Description           *string             `json:"description,omitempty"`
	PrimaryImage          *string             `json:"primaryImage,omitempty"`
	ContentRating         *string             `json:"contentRating,omitempty"`
	StartYear             *int                `json:"startYear,omitempty"`
	EndYear               *int                `json:"endYear,omitempty"`
	ReleaseDate           *string             `json:"releaseDate,omitempty"`
	Interests             []string            `json:"interests,omitempty"`
	CountriesOfOrigin     []string            `json:"countriesOfOrigin,omitempty"`
	SpokenLanguages       []string            `json:"spokenLanguages,omitempty"`
	FilmingLocations      []string            `json:"filmingLocations,omitempty"`
	ProductionCompanies   []ProductionCompany `json:"productionCompanies,omitempty"`
	Budget                *int64              `json:"budget,omitempty"`
	GrossWorldwide        *int64              `json:"grossWorldwide,omitempty"`
	Genres                []string            `json:"genres,omitempty"`
	IsAdult               bool                `json:"isAdult"`
	RuntimeMinutes        *int                `json:"runtimeMinutes,omitempty"`
	AverageRating         *float64            `json:"averageRating,omitempty"`
	NumVotes              *int64              `json:"numVotes,omitempty"`
	WeekendGrossAmount    *int64              `json:"weekendGrossAmount,omitempty"`
	WeekendGrossCurrency  *string             `json:"weekendGrossCurrency,omitempty"`
	LifetimeGrossAmount   *int64              `json:"lifetimeGrossAmount,omitempty"`
	LifetimeGrossCurrency *string             `json:"lifetimeGrossCurrency,omitempty"`
	WeeksRunning          *int                `json:"weeksRunning,omitempty"`
}

// HasGenre reports whether the record's genre list contains genre.
// Matching is case-sensitive; a nil or empty list never matches.
func (m MovieRecord) HasGenre(genre string) bool {
	for _, g := range m.Genres {
		if g == genre {
			return true
		}
	}
	return false
}
