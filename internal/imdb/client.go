package imdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/moviedeck/boxoffice/internal/domain"
)

// ErrUnavailable is returned when the upstream call does not complete.
var ErrUnavailable = errors.New("imdb: upstream unavailable")

const maxErrorBody = 8 << 10

// StatusError reports a non-success status from the provider. The status
// code and a bounded prefix of the response body are preserved so the
// caller can propagate the provider's semantics.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("imdb: upstream returned status %d", e.StatusCode)
}

// RecordError reports a payload element that cannot be mapped onto
// MovieRecord. Ingestion fails fast on the first bad element; a partial
// movie list is never produced.
type RecordError struct {
	Index  int
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("imdb: malformed record at index %d: %s", e.Index, e.Reason)
}

// Client defines the contract for retrieving the current top-box-office
// snapshot from the upstream provider.
type Client interface {
	FetchTopBoxOffice(ctx context.Context) ([]domain.MovieRecord, error)
}

// HTTPClient implements Client over HTTP against the RapidAPI IMDb source.
type HTTPClient struct {
	endpoint *url.URL
	host     string
	apiKey   string
	client   *http.Client
	logger   *zap.Logger
}

// NewHTTPClient constructs an HTTP-backed fetcher. The timeout applies to
// the whole exchange; there is no retry or backoff layer on top.
func NewHTTPClient(endpoint, host, apiKey string, timeout time.Duration, logger *zap.Logger) (*HTTPClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	parsed, err := url.Parse(strings.TrimRight(endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse imdb url: %w", err)
	}
	return &HTTPClient{
		endpoint: parsed,
		host:     host,
		apiKey:   apiKey,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

// FetchTopBoxOffice performs a single GET against the provider and maps the
// JSON array into MovieRecord values. Unknown payload fields are ignored.
func (c *HTTPClient) FetchTopBoxOffice(ctx context.Context) ([]domain.MovieRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("imdb upstream rejected request",
			zap.Int("status", resp.StatusCode))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var elements []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&elements); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	records := make([]domain.MovieRecord, 0, len(elements))
	for i, raw := range elements {
		record, err := decodeRecord(i, raw)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// moviePayload mirrors the provider's movie object. Required fields are
// pointers here so a missing key is distinguishable from an empty value.
type moviePayload struct {
	ID                    *string                    `json:"id"`
	URL                   *string                    `json:"url"`
	PrimaryTitle          *string                    `json:"primaryTitle"`
	OriginalTitle         *string                    `json:"originalTitle"`
	Type                  *string                    `json:"type"`
	Description           *string                    `json:"description"`
	PrimaryImage          *string                    `json:"primaryImage"`
	ContentRating         *string                    `json:"contentRating"`
	StartYear             *int                       `json:"startYear"`
	EndYear               *int                       `json:"endYear"`
	ReleaseDate           *string                    `json:"releaseDate"`
	Interests             []string                   `json:"interests"`
	CountriesOfOrigin     []string                   `json:"countriesOfOrigin"`
	SpokenLanguages       []string                   `json:"spokenLanguages"`
	FilmingLocations      []string                   `json:"filmingLocations"`
	ProductionCompanies   []domain.ProductionCompany `json:"productionCompanies"`
	Budget                *int64                     `json:"budget"`
	GrossWorldwide        *int64                     `json:"grossWorldwide"`
	Genres                []string                   `json:"genres"`
	IsAdult               *bool                      `json:"isAdult"`
	RuntimeMinutes        *int                       `json:"runtimeMinutes"`
	AverageRating         *float64                   `json:"averageRating"`
	NumVotes              *int64                     `json:"numVotes"`
	WeekendGrossAmount    *int64                     `json:"weekendGrossAmount"`
	WeekendGrossCurrency  *string                    `json:"weekendGrossCurrency"`
	LifetimeGrossAmount   *int64                     `json:"lifetimeGrossAmount"`
	LifetimeGrossCurrency *string                    `json:"lifetimeGrossCurrency"`
	WeeksRunning          *int                       `json:"weeksRunning"`
}

func decodeRecord(index int, raw json.RawMessage) (domain.MovieRecord, error) {
	var payload moviePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return domain.MovieRecord{}, &RecordError{
				Index:  index,
				Reason: fmt.Sprintf("field %s has wrong type", typeErr.Field),
			}
		}
		return domain.MovieRecord{}, &RecordError{Index: index, Reason: "not a JSON object"}
	}
	return convertRecord(index, payload)
}

func convertRecord(index int, payload moviePayload) (domain.MovieRecord, error) {
	switch {
	case payload.ID == nil || *payload.ID == "":
		return domain.MovieRecord{}, &RecordError{Index: index, Reason: "missing required field id"}
	case payload.PrimaryTitle == nil || *payload.PrimaryTitle == "":
		return domain.MovieRecord{}, &RecordError{Index: index, Reason: "missing required field primaryTitle"}
	case payload.OriginalTitle == nil || *payload.OriginalTitle == "":
		return domain.MovieRecord{}, &RecordError{Index: index, Reason: "missing required field originalTitle"}
	}
	if payload.AverageRating != nil && (*payload.AverageRating < 0 || *payload.AverageRating > 10) {
		return domain.MovieRecord{}, &RecordError{Index: index, Reason: "averageRating outside [0,10]"}
	}
	for _, field := range []struct {
		name  string
		value *int64
	}{
		{"numVotes", payload.NumVotes},
		{"weekendGrossAmount", payload.WeekendGrossAmount},
		{"lifetimeGrossAmount", payload.LifetimeGrossAmount},
	} {
		if field.value != nil && *field.value < 0 {
			return domain.MovieRecord{}, &RecordError{Index: index, Reason: field.name + " must be non-negative"}
		}
	}
	if payload.RuntimeMinutes != nil && *payload.RuntimeMinutes < 0 {
		return domain.MovieRecord{}, &RecordError{Index: index, Reason: "runtimeMinutes must be non-negative"}
	}

	isAdult := false
	if payload.IsAdult != nil {
		isAdult = *payload.IsAdult
	}

	return domain.MovieRecord{
		ID:                    *payload.ID,
		URL:                   payload.URL,
		Title:                 *payload.PrimaryTitle,
		OriginalTitle:         *payload.OriginalTitle,
		Type:                  payload.Type,
		Description:           payload.Description,
		PrimaryImage:          payload.PrimaryImage,
		ContentRating:         payload.ContentRating,
		StartYear:             payload.StartYear,
		EndYear:               payload.EndYear,
		ReleaseDate:           payload.ReleaseDate,
		Interests:             payload.Interests,
		CountriesOfOrigin:     payload.CountriesOfOrigin,
		SpokenLanguages:       payload.SpokenLanguages,
		FilmingLocations:      payload.FilmingLocations,
		ProductionCompanies:   payload.ProductionCompanies,
		Budget:                payload.Budget,
		GrossWorldwide:        payload.GrossWorldwide,
		Genres:                payload.Genres,
		IsAdult:               isAdult,
		RuntimeMinutes:        payload.RuntimeMinutes,
		AverageRating:         payload.AverageRating,
		NumVotes:              payload.NumVotes,
		WeekendGrossAmount:    payload.WeekendGrossAmount,
		WeekendGrossCurrency:  payload.WeekendGrossCurrency,
		LifetimeGrossAmount:   payload.LifetimeGrossAmount,
		LifetimeGrossCurrency: payload.LifetimeGrossCurrency,
		WeeksRunning:          payload.WeeksRunning,
	}, nil
}
