package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/moviedeck/boxoffice/internal/imdb"
	"github.com/moviedeck/boxoffice/internal/query"
	"github.com/moviedeck/boxoffice/internal/render"
)

var validate = validator.New()

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// listParams carries the caller-supplied view parameters after defaulting.
// The limit upper bound is not enforced here: values above the cap are
// clamped by the pipeline, not rejected.
type listParams struct {
	Sort  string `validate:"oneof=rating gross release title"`
	Limit int    `validate:"min=1"`
}

func parseListParams(values url.Values) (listParams, error) {
	params := listParams{Sort: string(query.SortRating), Limit: query.DefaultLimit}

	if v := strings.TrimSpace(values.Get("sort")); v != "" {
		params.Sort = v
	}
	if v := strings.TrimSpace(values.Get("limit")); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return params, &query.InvalidQueryError{Field: "limit", Reason: "must be an integer"}
		}
		params.Limit = limit
	}

	if err := validate.Struct(params); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return params, &query.InvalidQueryError{
				Field:  strings.ToLower(fe.Field()),
				Reason: validationReason(fe),
			}
		}
		return params, &query.InvalidQueryError{Field: "query", Reason: "invalid parameters"}
	}
	return params, nil
}

func validationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return "invalid value"
	}
}

func (s *Server) handleMovies(w http.ResponseWriter, r *http.Request) {
	records, err := s.engine.Movies(r.Context())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, records)
}

func (s *Server) handleSummaries(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r.URL.Query())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	out, err := s.engine.Summaries(r.Context(), query.SortKey(params.Sort), params.Limit)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r.URL.Query())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	out, err := s.engine.Table(r.Context(), query.SortKey(params.Sort), params.Limit)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.respondText(w, out)
}

func (s *Server) handleTopRated(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r.URL.Query())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	out, err := s.engine.RatingTable(r.Context(), params.Limit)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.respondHTML(w, out)
}

func (s *Server) handleGenreTable(w http.ResponseWriter, r *http.Request) {
	genre, err := decodeGenreParam(r)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	params, err := parseListParams(r.URL.Query())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	out, err := s.engine.GenreTable(r.Context(), genre, params.Limit)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.respondHTML(w, out)
}

func (s *Server) handleHighestOpening(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r.URL.Query())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	out, err := s.engine.HighestOpeningTable(r.Context(), params.Limit)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.respondHTML(w, out)
}

func decodeGenreParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "genre")
	if raw == "" {
		return "", &query.InvalidQueryError{Field: "genre", Reason: "missing genre parameter"}
	}
	genre, err := url.PathUnescape(raw)
	if err != nil {
		return "", &query.InvalidQueryError{Field: "genre", Reason: "invalid genre parameter"}
	}
	return genre, nil
}

// writeEngineError maps the engine's error taxonomy onto response statuses.
// Every kind is terminal for the request; nothing is retried here.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	var invalid *query.InvalidQueryError
	var incomplete *render.IncompleteRecordError
	var status *imdb.StatusError
	var malformed *imdb.RecordError

	switch {
	case errors.As(err, &invalid):
		s.respondError(w, http.StatusBadRequest, "INVALID_QUERY", invalid.Error())
	case errors.As(err, &malformed):
		s.logger.Error("upstream payload rejected", zap.Error(err))
		s.respondError(w, http.StatusBadGateway, "MALFORMED_RECORD", malformed.Error())
	case errors.As(err, &status):
		code := status.StatusCode
		if code < 100 || code > 599 {
			code = http.StatusBadGateway
		}
		s.respondError(w, code, "UPSTREAM_ERROR",
			fmt.Sprintf("upstream provider returned status %d", status.StatusCode))
	case errors.Is(err, imdb.ErrUnavailable):
		s.logger.Error("upstream unreachable", zap.Error(err))
		s.respondError(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "upstream provider unreachable")
	case errors.As(err, &incomplete):
		s.logger.Error("record incomplete for view", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INCOMPLETE_RECORD", incomplete.Error())
	default:
		s.logger.Error("unhandled engine error", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "unexpected failure")
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Error("failed to encode response", zap.Error(err))
		}
	}
}

func (s *Server) respondText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (s *Server) respondHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{Code: code, Message: message})
}
