package controllers

import (
	"errors"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"github.com/spf13/cast"

	"nomadix/internal/models"
	"nomadix/internal/providers"
	"nomadix/internal/route"
	"nomadix/internal/services"
	"nomadix/internal/sources"
	"nomadix/internal/tracking/interfaces"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger    providers.Logger
	service   services.TravelServiceInterface
	scheduler interfaces.SchedulerInterface
	push      *sources.PushSource
	cache     providers.CacheProviderInterface
}

func NewApiController(
	logger providers.Logger,
	service services.TravelServiceInterface,
	scheduler interfaces.SchedulerInterface,
	push *sources.PushSource,
	cache providers.CacheProviderInterface,
) *ApiController {
	return &ApiController{
		logger:    logger,
		service:   service,
		scheduler: scheduler,
		push:      push,
		cache:     cache,
	}
}

type addLocationRequest struct {
	ID        string  `json:"id"`
	City      string  `json:"city" validate:"required"`
	Country   string  `json:"country" validate:"required"`
	Continent string  `json:"continent" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"min:-90|max:90"`
	Longitude float64 `json:"longitude" validate:"min:-180|max:180"`
	Date      string  `json:"date" validate:"required"`
}

type addLocationResponse struct {
	Added  bool                   `json:"added"`
	Record *models.LocationRecord `json:"record,omitempty"`
}

type visitRequest struct {
	Level     string  `json:"level" validate:"required|in:city,country,continent"`
	City      string  `json:"city" validate:"required"`
	Country   string  `json:"country" validate:"required"`
	Continent string  `json:"continent" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"min:-90|max:90"`
	Longitude float64 `json:"longitude" validate:"min:-180|max:180"`
	VisitedAt string  `json:"visitedAt" validate:"required"`
}

type countResponse struct {
	Count int `json:"count"`
}

func writeJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (ac *ApiController) respond(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		ac.logger.Errorf(providers.TypeApp, "Error encoding response: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, gson)
}

// serveFromCacheOrCompute keys responses by list version, so a write invalidates every cached view.
func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, name string, compute func([]models.LocationRecord) any) {
	cacheKey := name + ":v" + strconv.FormatUint(ac.service.Version(), 10)
	if data, ok := ac.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}

	gson, err := json.Marshal(compute(ac.service.GetLocations()))
	if err != nil {
		ac.logger.Errorf(providers.TypeApp, "Error encoding %s: %s", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)
	writeJSON(w, http.StatusOK, gson)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func validateRequest(w http.ResponseWriter, req any) bool {
	v := validate.Struct(req)
	if !v.Validate() {
		http.Error(w, v.Errors.Error(), http.StatusUnprocessableEntity)
		return false
	}
	return true
}

// GetLocations lists the history by date. An optional limit keeps only the most recent entries.
func (ac *ApiController) GetLocations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := cast.ToIntE(raw)
		if err != nil || n < 0 {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		limit = n
	}

	ac.serveFromCacheOrCompute(w, "locations:"+strconv.Itoa(limit), func(list []models.LocationRecord) any {
		if limit > 0 && limit < len(list) {
			return list[len(list)-limit:]
		}
		return list
	})
}

func (ac *ApiController) AddLocation(w http.ResponseWriter, r *http.Request) {
	var req addLocationRequest
	if !decodeBody(w, r, &req) || !validateRequest(w, &req) {
		return
	}

	record, added, err := ac.service.AddLocation(r.Context(), models.LocationRecord{
		ID:        req.ID,
		City:      req.City,
		Country:   req.Country,
		Continent: req.Continent,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Date:      req.Date,
	})
	switch {
	case errors.Is(err, models.ErrValidation):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		ac.logger.Errorf(providers.TypePost, "Error adding location: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !added {
		ac.respond(w, http.StatusOK, addLocationResponse{Added: false})
		return
	}
	ac.respond(w, http.StatusCreated, addLocationResponse{Added: true, Record: &record})
}

// MergeVisits accepts a batch of visits detected by a client and returns the resulting history size.
func (ac *ApiController) MergeVisits(w http.ResponseWriter, r *http.Request) {
	var reqs []visitRequest
	if !decodeBody(w, r, &reqs) {
		return
	}

	visits := make([]models.VisitRecord, 0, len(reqs))
	for i := range reqs {
		if !validateRequest(w, &reqs[i]) {
			return
		}
		visitedAt, err := models.ParseDate(reqs[i].VisitedAt)
		if err != nil {
			http.Error(w, "visitedAt is not ISO-8601", http.StatusUnprocessableEntity)
			return
		}
		visits = append(visits, models.VisitRecord{
			Level:     models.Level(reqs[i].Level),
			City:      reqs[i].City,
			Country:   reqs[i].Country,
			Continent: reqs[i].Continent,
			Latitude:  reqs[i].Latitude,
			Longitude: reqs[i].Longitude,
			VisitedAt: visitedAt,
		})
	}

	if err := ac.service.MergeVisits(r.Context(), visits); err != nil {
		ac.logger.Errorf(providers.TypePost, "Error merging visits: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.respond(w, http.StatusOK, countResponse{Count: len(ac.service.GetLocations())})
}

// PushFix stores a device position for the next tracking tick.
func (ac *ApiController) PushFix(w http.ResponseWriter, r *http.Request) {
	var fix sources.Fix
	if !decodeBody(w, r, &fix) || !validateRequest(w, &fix) {
		return
	}
	ac.push.Push(fix)
	w.WriteHeader(http.StatusAccepted)
}

func (ac *ApiController) GetRoute(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "route", func(list []models.LocationRecord) any {
		return route.Build(list)
	})
}

func (ac *ApiController) GetRouteGeoJSON(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "geojson", func(list []models.LocationRecord) any {
		return route.GeoJSON(route.Build(list))
	})
}

func (ac *ApiController) GetStats(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "stats", func(list []models.LocationRecord) any {
		return route.ComputeStats(list)
	})
}

func (ac *ApiController) GetTracking(w http.ResponseWriter, r *http.Request) {
	ac.respond(w, http.StatusOK, ac.scheduler.State())
}

func (ac *ApiController) PauseTracking(w http.ResponseWriter, r *http.Request) {
	ac.scheduler.Pause()
	ac.respond(w, http.StatusOK, ac.scheduler.State())
}

func (ac *ApiController) ResumeTracking(w http.ResponseWriter, r *http.Request) {
	ac.scheduler.Resume()
	ac.respond(w, http.StatusOK, ac.scheduler.State())
}

// Sync re-reads the remote history.
func (ac *ApiController) Sync(w http.ResponseWriter, r *http.Request) {
	if err := ac.service.Seed(r.Context()); err != nil {
		ac.logger.Errorf(providers.TypePost, "Sync failed: %s", err)
		if errors.Is(err, models.ErrNetworkFailure) {
			http.Error(w, "Bad Gateway", http.StatusBadGateway)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.respond(w, http.StatusOK, countResponse{Count: len(ac.service.GetLocations())})
}
