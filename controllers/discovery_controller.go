package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"wander_server/middleware"
	"wander_server/services"

	"github.com/gorilla/mux"
)

// requestTimeout bounds every discovery request; expiry surfaces as an
// internal fault.
const requestTimeout = 10 * time.Second

// DiscoveryController handles the discovery and recommendation endpoints
type DiscoveryController struct {
	Discovery       *services.DiscoveryService
	Recommendations *services.RecommendationService
	ProfileViews    *services.ProfileViewService
}

// NewDiscoveryController creates a new instance of DiscoveryController
func NewDiscoveryController(
	discovery *services.DiscoveryService,
	recommendations *services.RecommendationService,
	profileViews *services.ProfileViewService,
) *DiscoveryController {
	return &DiscoveryController{
		Discovery:       discovery,
		Recommendations: recommendations,
		ProfileViews:    profileViews,
	}
}

// GetNearbyUsers handles GET /users/discovery/nearby
func (c *DiscoveryController) GetNearbyUsers(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	latitude, err := parseFloatParam(r, "latitude")
	if err != nil {
		http.Error(w, "Invalid latitude", http.StatusBadRequest)
		return
	}
	longitude, err := parseFloatParam(r, "longitude")
	if err != nil {
		http.Error(w, "Invalid longitude", http.StatusBadRequest)
		return
	}

	params := services.NearbyParams{
		Latitude:            latitude,
		Longitude:           longitude,
		RadiusKm:            parseFloatParamDefault(r, "radiusInKm", services.DefaultRadiusKm),
		Limit:               parseIntParam(r, "limit", services.DefaultPageSize),
		Offset:              parseIntParam(r, "offset", 0),
		ActiveOnly:          r.URL.Query().Get("activeOnly") == "true",
		ActiveWithinMinutes: parseIntParam(r, "activeWithinMinutes", services.DefaultActiveWithinMinutes),
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := c.Discovery.NearbyUsers(ctx, userID, params)
	if err != nil {
		writeServiceError(w, err, "fetch nearby users", userID)
		return
	}
	writeJSON(w, response)
}

// GetRecommendedUsers handles GET /users/discovery/recommended
func (c *DiscoveryController) GetRecommendedUsers(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := parseIntParam(r, "limit", services.DefaultPageSize)
	offset := parseIntParam(r, "offset", 0)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := c.Discovery.RecommendedUsers(ctx, userID, limit, offset)
	if err != nil {
		writeServiceError(w, err, "fetch recommended users", userID)
		return
	}
	writeJSON(w, response)
}

// GetProfileViewers handles GET /users/discovery/profile-viewers
func (c *DiscoveryController) GetProfileViewers(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := parseIntParam(r, "limit", services.DefaultPageSize)
	offset := parseIntParam(r, "offset", 0)
	daysBack := parseIntParam(r, "daysBack", services.DefaultViewerDaysBack)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	response, err := c.ProfileViews.ProfileViewers(ctx, userID, limit, offset, daysBack)
	if err != nil {
		writeServiceError(w, err, "fetch profile viewers", userID)
		return
	}
	writeJSON(w, response)
}

// GetHomepageRecommendations handles GET /users/discovery/homepage
func (c *DiscoveryController) GetHomepageRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	recommendations, err := c.Recommendations.HomepageRecommendations(ctx, userID)
	if err != nil {
		writeServiceError(w, err, "fetch homepage recommendations", userID)
		return
	}
	writeJSON(w, recommendations)
}

// RecordProfileView handles POST /users/discovery/profile-views/{userId}
func (c *DiscoveryController) RecordProfileView(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	viewedID := mux.Vars(r)["userId"]

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	view, err := c.ProfileViews.RecordView(ctx, viewerID, viewedID)
	if err != nil {
		writeServiceError(w, err, "record profile view", viewerID)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]interface{}{
		"message": "Profile view recorded",
		"view":    view,
	})
}

// writeServiceError maps precondition sentinels to 400/404 and everything
// else to a generic internal fault so store errors never leak to callers.
func writeServiceError(w http.ResponseWriter, err error, operation, userID string) {
	switch {
	case errors.Is(err, services.ErrInvalidCoordinates),
		errors.Is(err, services.ErrNoLocation),
		errors.Is(err, services.ErrSelfView):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("Failed to %s for user %s: %v", operation, userID, err)
		http.Error(w, "Failed to "+operation, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func parseFloatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(raw, 64)
}

func parseFloatParamDefault(r *http.Request, name string, defaultValue float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseIntParam(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
