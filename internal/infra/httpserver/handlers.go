package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/checkops/internal/application/console"
	"github.com/bryanwahyu/checkops/internal/application/dashboard"
	"github.com/bryanwahyu/checkops/internal/application/uploads"
	"github.com/bryanwahyu/checkops/internal/domain/screening"
	"github.com/bryanwahyu/checkops/internal/middleware"
)

// GET /v1/dashboard?user=
func (r *Router) handleDashboard(w http.ResponseWriter, req *http.Request) error {
	snap, err := r.dashboard.Snapshot(req.Context(), currentUser(req))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, snap)
}

// GET /v1/applicants
func (r *Router) handleListApplicants(w http.ResponseWriter, req *http.Request) error {
	list, err := r.dashboard.ListApplicants(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// POST /v1/applicants
// Body: {"name","role","region","status"?}
func (r *Router) handleAddApplicant(w http.ResponseWriter, req *http.Request) error {
	var cmd dashboard.AddApplicantCommand
	if err := decodeJSON(req, &cmd); err != nil {
		return err
	}
	cmd.Name = middleware.SanitizeString(cmd.Name)
	cmd.Role = middleware.SanitizeString(cmd.Role)
	cmd.Region = middleware.SanitizeString(cmd.Region)

	a, err := r.dashboard.AddApplicant(req.Context(), cmd)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, a)
}

// DELETE /v1/applicants/{id}
func (r *Router) handleRemoveApplicant(w http.ResponseWriter, req *http.Request) error {
	if err := r.dashboard.RemoveApplicant(req.Context(), chi.URLParam(req, "id")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GET /v1/cases
func (r *Router) handleCases(w http.ResponseWriter, req *http.Request) error {
	list, err := r.dashboard.CaseStatuses(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/benchmarks
func (r *Router) handleBenchmarks(w http.ResponseWriter, req *http.Request) error {
	list, err := r.dashboard.Benchmarks(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/verifications
func (r *Router) handleVerifications(w http.ResponseWriter, req *http.Request) error {
	list, err := r.dashboard.VerificationSummary(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/delays
func (r *Router) handleDelays(w http.ResponseWriter, req *http.Request) error {
	list, err := r.dashboard.DelayInsights(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/alerts
func (r *Router) handleAlerts(w http.ResponseWriter, req *http.Request) error {
	list, err := r.dashboard.Alerts(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/history?user=
func (r *Router) handleListHistory(w http.ResponseWriter, req *http.Request) error {
	list, err := r.dashboard.ListHistory(req.Context(), currentUser(req))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// POST /v1/history
// Body: {"userId","searchQuery","intent","entities"?}
func (r *Router) handleRecordHistory(w http.ResponseWriter, req *http.Request) error {
	var cmd dashboard.RecordQueryCommand
	if err := decodeJSON(req, &cmd); err != nil {
		return err
	}
	cmd.SearchQuery = middleware.SanitizeString(cmd.SearchQuery)

	entry, err := r.dashboard.RecordQuery(req.Context(), cmd)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, entry)
}

// GET /v1/recommendations?user=
func (r *Router) handleRecommendations(w http.ResponseWriter, req *http.Request) error {
	recs, err := r.dashboard.Recommendations(req.Context(), currentUser(req))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, recs)
}

// POST /v1/what-if
// Body: {"region","orderVolume","submitsPerWeek","rush"}
func (r *Router) handleWhatIf(w http.ResponseWriter, req *http.Request) error {
	var in screening.WhatIfInput
	if err := decodeJSON(req, &in); err != nil {
		return err
	}
	out, err := r.dashboard.WhatIf(req.Context(), in)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, out)
}

// POST /v1/uploads (multipart, field "file")
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, r.maxUpload)
	file, header, err := req.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return &screening.ValidationError{Fields: []string{"file"}}
		}
		return err
	}
	defer file.Close()

	att, err := r.uploads.Upload(req.Context(), uploads.UploadCommand{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, att)
}

// POST /v1/console/query
// Body: {"prompt","userId"?}
func (r *Router) handleConsoleQuery(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Prompt string `json:"prompt"`
		UserID string `json:"userId"`
	}
	if err := decodeJSON(req, &body); err != nil {
		return err
	}
	prompt, err := middleware.SanitizePrompt(body.Prompt)
	if err != nil {
		return &screening.ValidationError{Fields: []string{"prompt"}}
	}
	user := body.UserID
	if user == "" {
		user = currentUser(req)
	}

	resp, err := r.console.Ask(req.Context(), console.AskCommand{UserID: user, Prompt: prompt})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, resp)
}
