package matchinghandler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gigmatch/internal/domain/auth"
	"gigmatch/internal/domain/matching"
	"gigmatch/internal/transport/http/api"
	"gigmatch/internal/transport/http/middleware"
)

type Service interface {
	RankJobsForWorker(ctx context.Context, workerID string, workerLocation *matching.Coordinates) ([]matching.RankedJob, error)
	RankWorkersForJob(ctx context.Context, jobID string) ([]matching.RankedWorker, error)
}

type Handler struct {
	Service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/matching/jobs", h.handleRankJobs)
	r.Get("/matching/jobs/{jobID}/workers", h.handleRankWorkers)
}

func (h *Handler) handleRankJobs(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "no_session", "authentication required", requestID)
		return
	}
	if sess.Role != auth.RoleWorker {
		api.Fail(w, http.StatusForbidden, "forbidden", "worker role required", requestID)
		return
	}

	location, ok := parseLocation(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_location", "lat and lng must both be valid numbers", requestID)
		return
	}

	ranked, err := h.Service.RankJobsForWorker(r.Context(), sess.SubjectID, location)
	if errors.Is(err, matching.ErrWorkerNotFound) {
		api.Fail(w, http.StatusNotFound, "worker_not_found", "worker not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "ranking_failed", "failed to rank jobs", requestID)
		return
	}
	api.Success(w, ranked, requestID)
}

func (h *Handler) handleRankWorkers(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "no_session", "authentication required", requestID)
		return
	}
	if sess.Role != auth.RoleBusiness {
		api.Fail(w, http.StatusForbidden, "forbidden", "business role required", requestID)
		return
	}

	ranked, err := h.Service.RankWorkersForJob(r.Context(), chi.URLParam(r, "jobID"))
	if errors.Is(err, matching.ErrJobNotFound) {
		api.Fail(w, http.StatusNotFound, "job_not_found", "job not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "ranking_failed", "failed to rank workers", requestID)
		return
	}
	api.Success(w, ranked, requestID)
}

// parseLocation reads optional lat/lng query params. Both must be present
// and parseable to produce a location; neither present means no location.
func parseLocation(r *http.Request) (*matching.Coordinates, bool) {
	latRaw := r.URL.Query().Get("lat")
	lngRaw := r.URL.Query().Get("lng")
	if latRaw == "" && lngRaw == "" {
		return nil, true
	}
	lat, latErr := strconv.ParseFloat(latRaw, 64)
	lng, lngErr := strconv.ParseFloat(lngRaw, 64)
	if latErr != nil || lngErr != nil {
		return nil, false
	}
	return &matching.Coordinates{Lat: lat, Lng: lng}, true
}
