package routes

import (
	"wander_server/controllers"
	"wander_server/middleware"
	"wander_server/services"

	"github.com/gorilla/mux"
)

// RegisterDiscoveryRoutes sets up the discovery/recommendation endpoints
// under /users/discovery. Every route requires an authenticated caller.
func RegisterDiscoveryRoutes(
	r *mux.Router,
	discoveryService *services.DiscoveryService,
	recommendationService *services.RecommendationService,
	profileViewService *services.ProfileViewService,
) {
	controller := controllers.NewDiscoveryController(discoveryService, recommendationService, profileViewService)

	discoveryRouter := r.PathPrefix("/users/discovery").Subrouter()
	discoveryRouter.Use(middleware.Authenticate)

	discoveryRouter.HandleFunc("/nearby", controller.GetNearbyUsers).Methods("GET")
	discoveryRouter.HandleFunc("/recommended", controller.GetRecommendedUsers).Methods("GET")
	discoveryRouter.HandleFunc("/profile-viewers", controller.GetProfileViewers).Methods("GET")
	discoveryRouter.HandleFunc("/homepage", controller.GetHomepageRecommendations).Methods("GET")
	discoveryRouter.HandleFunc("/profile-views/{userId}", controller.RecordProfileView).Methods("POST")
}
