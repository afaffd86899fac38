package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-analyzer/internal/knowledge"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// maxSearchResults caps taxonomy search responses
const maxSearchResults = 100

// AnalyzeRequest is the body for POST /analyze.
type AnalyzeRequest struct {
	ResumeText string                `json:"resume_text" validate:"required"`
	JobText    string                `json:"job_text" validate:"required"`
	External   []types.CheckerResult `json:"external,omitempty"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// AnalyzeURLRequest is the body for POST /analyze/url. The job description
// is fetched from JobURL instead of being supplied inline.
type AnalyzeURLRequest struct {
	ResumeText string                `json:"resume_text" validate:"required"`
	JobURL     string                `json:"job_url" validate:"required,url"`
	External   []types.CheckerResult `json:"external,omitempty"`
}

// Validate validates the AnalyzeURLRequest using the validator.
func (r *AnalyzeURLRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SkillResponse is the body for GET /taxonomy/skills/{id}.
type SkillResponse struct {
	Skill   types.Skill          `json:"skill"`
	Related []types.RelatedSkill `json:"related,omitempty"`
}

// SearchResponse is the body for GET /taxonomy/search.
type SearchResponse struct {
	Query   string        `json:"query"`
	Count   int           `json:"count"`
	Results []types.Skill `json:"results"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume_text and job_text are required")
		return
	}

	report, err := s.engine.Analyze(r.Context(), types.AnalysisInput{
		ResumeText: req.ResumeText,
		JobText:    req.JobText,
		External:   req.External,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logAnalysis(r, report)
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleAnalyzeURL(w http.ResponseWriter, r *http.Request) {
	if s.ingestor == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "URL ingestion is not enabled on this server")
		return
	}

	var req AnalyzeURLRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume_text and a valid job_url are required")
		return
	}

	jobText, err := s.ingestor.JobText(r.Context(), req.JobURL)
	if err != nil {
		// Upstream fetch problems are the remote site's fault, not ours
		if status := HTTPStatus(err); status == http.StatusInternalServerError {
			s.errorResponse(w, http.StatusBadGateway, fmt.Sprintf("fetching job posting: %v", err))
			return
		}
		s.writeError(w, err)
		return
	}

	report, err := s.engine.Analyze(r.Context(), types.AnalysisInput{
		ResumeText: req.ResumeText,
		JobText:    jobText,
		JobURL:     req.JobURL,
		External:   req.External,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logAnalysis(r, report)
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleGetSkill(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	skill, ok := s.index.Get(id)
	if !ok {
		s.writeError(w, fmt.Errorf("%w: %s", knowledge.ErrNotFound, id))
		return
	}
	// Embedding vectors are internal; keep them off the wire
	skill.Embedding = nil

	s.jsonResponse(w, http.StatusOK, SkillResponse{
		Skill:   skill,
		Related: s.index.Related(id),
	})
}

func (s *Server) handleSearchSkills(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.errorResponse(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	limit := 20
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 {
			s.errorResponse(w, http.StatusBadRequest, "Query parameter 'limit' must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxSearchResults {
		limit = maxSearchResults
	}

	results := s.index.Search(query, limit)
	for i := range results {
		results[i].Embedding = nil
	}
	s.jsonResponse(w, http.StatusOK, SearchResponse{
		Query:   query,
		Count:   len(results),
		Results: results,
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"skills": s.index.Count(),
	})
}

// decodeBody reads a JSON request body into dst under the body size cap,
// writing the error response itself when decoding fails.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, &ErrPayloadTooLarge{Limit: s.maxBody})
			return false
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
