package handler

import (
	"github.com/abdusco/shelf/internal/functions"
	"github.com/labstack/echo/v4"
)

func RegisterAPI(api *echo.Group, registry *functions.Registry) {
	functionHandler := NewFunctionHandler(registry)
	api.POST("/query", functionHandler.Query)
	api.POST("/mutation", functionHandler.Mutation)

	linkHandler := NewLinkHandler(registry)
	api.GET("/links", linkHandler.ListLinks)
	api.POST("/links", linkHandler.CreateLink)

	modelHandler := NewModelHandler(registry)
	api.GET("/models", modelHandler.ListModels)
	api.POST("/models", modelHandler.CreateModel)
}
