package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/campushare/relevance/internal/auth"
	"github.com/campushare/relevance/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query, err := parseSearchRequest(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity := auth.IdentityFrom(r.Context())
	callerID := ""
	if identity != nil {
		callerID = identity.UserID
	}

	s.logger.Debug("search request",
		zap.String("query", query.Text),
		zap.String("caller", callerID),
	)

	start := time.Now()
	resp, err := s.engine.Search(r.Context(), query, callerID)
	s.metrics.SearchLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, models.ErrEmptyQuery) {
			s.metrics.SearchesTotal.WithLabelValues("error").Inc()
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.metrics.SearchesTotal.WithLabelValues("error").Inc()
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "search failed")
		return
	}

	switch {
	case resp.Diagnostic != "":
		s.metrics.SearchesTotal.WithLabelValues("degraded").Inc()
	case resp.TotalResults == 0:
		s.metrics.SearchesTotal.WithLabelValues("zero_result").Inc()
	default:
		s.metrics.SearchesTotal.WithLabelValues("hit").Inc()
	}
	s.metrics.SearchResultCount.Observe(float64(resp.TotalResults))
	s.respondJSON(w, http.StatusOK, resp)
}

// parseSearchRequest accepts both GET query parameters and a POST JSON body.
func parseSearchRequest(r *http.Request) (*models.SearchQuery, error) {
	if r.Method == http.MethodPost {
		var query models.SearchQuery
		if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
			return nil, err
		}
		return &query, nil
	}

	params := r.URL.Query()
	query := &models.SearchQuery{
		Text: params.Get("q"),
		Filters: models.SearchFilters{
			Subject:      params.Get("subject"),
			Class:        params.Get("class"),
			Semester:     params.Get("semester"),
			UploaderType: params.Get("uploaderType"),
		},
	}
	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		query.Limit = limit
	}
	return query, nil
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	profile := s.profileFor(r)

	resp, err := s.suggester.Suggest(r.Context(), profile)
	if err != nil {
		s.logger.Error("suggestions failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to get suggestions")
		return
	}
	s.metrics.SuggestionsTotal.WithLabelValues(resp.Type).Inc()
	s.respondJSON(w, http.StatusOK, resp)
}

// profileFor builds the suggestion-mode user profile from the validated
// identity, including the user's own uploads for interest derivation.
// Anonymous callers get a nil profile (guest mode).
func (s *Server) profileFor(r *http.Request) *models.UserProfile {
	identity := auth.IdentityFrom(r.Context())
	if identity == nil {
		return nil
	}
	profile := &models.UserProfile{
		UserID:   identity.UserID,
		Name:     identity.Name,
		UserType: identity.UserType,
		Subject:  identity.Subject,
		Class:    identity.Class,
		Semester: identity.Semester,
	}
	uploads, err := s.provider.DocumentsByUploader(r.Context(), identity.UserID)
	if err != nil {
		// Interests degrade to the declared profile fields only.
		s.logger.Warn("failed to load own uploads", zap.Error(err))
		return profile
	}
	profile.OwnUploads = uploads
	return profile
}

func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	facets, err := s.engine.Facets(r.Context())
	if err != nil {
		s.logger.Error("facet aggregation failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to fetch labels")
		return
	}
	s.respondJSON(w, http.StatusOK, facets)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	docs, err := s.provider.Snapshot(r.Context())
	if err != nil {
		s.logger.Error("status: corpus snapshot failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "corpus unavailable")
		return
	}
	s.metrics.CorpusSize.Set(float64(len(docs)))
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"documents":       len(docs),
		"ranking_profile": string(s.engine.Ranker().Config().Profile),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}
