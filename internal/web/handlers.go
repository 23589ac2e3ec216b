package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/mrv/internal/core"
	"github.com/go-chi/chi/v5"
)

// maxRequestBody bounds ingestion request bodies; they only name objects.
const maxRequestBody = 1 << 20

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

type healthResponse struct {
	Status string                   `json:"status"`
	Ingest core.IngestLimiterStatus `json:"ingest"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, healthResponse{
		Status: "ok",
		Ingest: s.service.LimiterStatus(),
	})
}

// ingestResult is the outcome for one object of an ingestion request.
type ingestResult struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	*core.IngestResult
	Error *ErrorResponse `json:"error,omitempty"`
}

type ingestResponse struct {
	Status  string         `json:"status"`
	Results []ingestResult `json:"results"`
}

// handleIngest ingests every object named in the body, one after another.
// The response is 200 when all succeed; otherwise it carries the status of
// the first failure and the per-object outcomes.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	locs, err := parseIngestRequest(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	resp := ingestResponse{Status: statusSuccess, Results: make([]ingestResult, 0, len(locs))}
	status := http.StatusOK
	for _, loc := range locs {
		res, err := s.service.Ingest(r.Context(), loc)
		out := ingestResult{Bucket: loc.Bucket, Key: loc.Key, IngestResult: res}
		if err != nil {
			e := errorResponse(err)
			out.Error = &e
			if resp.Status == statusSuccess {
				resp.Status = statusFailure
				status = statusFor(err)
			}
		}
		resp.Results = append(resp.Results, out)
	}

	writeJSON(w, r, status, resp)
}

// handleGetVesselItem serves one vessel item, addressed either by path
// parameters or by the reportingPeriod and imoNumber query parameters.
func (s *Server) handleGetVesselItem(w http.ResponseWriter, r *http.Request) {
	periodParam := chi.URLParam(r, "reportingPeriod")
	imo := chi.URLParam(r, "imoNumber")
	if periodParam == "" && imo == "" {
		q := r.URL.Query()
		periodParam = q.Get("reportingPeriod")
		imo = q.Get("imoNumber")
	}

	period, err := strconv.Atoi(strings.TrimSpace(periodParam))
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: reportingPeriod %q is not a number", errInvalidQuery, periodParam), http.StatusBadRequest)
		return
	}
	imo = strings.TrimSpace(imo)
	if imo == "" {
		respondError(w, r, fmt.Errorf("%w: imoNumber is required", errInvalidQuery), http.StatusBadRequest)
		return
	}

	item, err := s.service.GetVesselItem(r.Context(), period, imo)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}
