package router

import (
	"ivolexMarket/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/by-category", handler.GetProductsByCategory)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct)
	products.PUT("/:id", handler.UpdateProduct)
	products.DELETE("/:id", handler.DeleteProduct)
}

func SetBehaviorRoutes(api *echo.Group, handler *rest.BehaviorHandler, sessionRequired echo.MiddlewareFunc) {
	behavior := api.Group("/behavior", sessionRequired)

	behavior.POST("/events", handler.RecordEvent)
	behavior.GET("/events", handler.GetEventLog)
	behavior.GET("/history", handler.GetHistory)
}

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, sessionRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", sessionRequired)

	reco.GET("/trending", handler.Trending)
	reco.GET("/personalized", handler.Personalized)
	reco.GET("/related/:id", handler.Related)
	reco.GET("/co-interacted/:id", handler.FrequentlyCoInteracted)
	reco.GET("/category", handler.CategoryBased)
	reco.POST("/cross-sell", handler.CrossSell)
	reco.GET("/upsell/:id", handler.Upsell)
}

func SetSearchRoutes(api *echo.Group, handler *rest.SearchHandler, sessionRequired echo.MiddlewareFunc) {
	search := api.Group("/search", sessionRequired)

	search.GET("", handler.Search)
	search.GET("/advanced", handler.AdvancedSearch)
}

func SetAnalyticsRoutes(api *echo.Group, handler *rest.AnalyticsHandler, sessionRequired echo.MiddlewareFunc) {
	analytics := api.Group("/analytics", sessionRequired)

	analytics.GET("", handler.GetUserAnalytics)
}
