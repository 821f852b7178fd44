package internal

import (
	"net/http"

	"nomadix/internal/controllers"
	"nomadix/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/locations", http.HandlerFunc(apiController.GetLocations))
	routers.Post("/locations", http.HandlerFunc(apiController.AddLocation))
	routers.Post("/visits", http.HandlerFunc(apiController.MergeVisits))
	routers.Post("/fixes", http.HandlerFunc(apiController.PushFix))
	routers.Get("/route", http.HandlerFunc(apiController.GetRoute))
	routers.Get("/route/geojson", http.HandlerFunc(apiController.GetRouteGeoJSON))
	routers.Get("/stats", http.HandlerFunc(apiController.GetStats))
	routers.Get("/tracking", http.HandlerFunc(apiController.GetTracking))
	routers.Post("/tracking/pause", http.HandlerFunc(apiController.PauseTracking))
	routers.Post("/tracking/resume", http.HandlerFunc(apiController.ResumeTracking))
	routers.Post("/sync", http.HandlerFunc(apiController.Sync))
	return routers
}
