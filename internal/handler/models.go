package handler

import (
	"net/http"

	"github.com/abdusco/shelf/internal"
	"github.com/abdusco/shelf/internal/functions"
	"github.com/labstack/echo/v4"
)

type ModelHandler struct {
	registry *functions.Registry
}

func NewModelHandler(registry *functions.Registry) *ModelHandler {
	return &ModelHandler{registry: registry}
}

type ListModelsResponse struct {
	Models []internal.Model `json:"models"`
}

func (h *ModelHandler) CreateModel(c echo.Context) error {
	var args map[string]any
	if err := c.Bind(&args); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	id, err := h.registry.Call(c.Request().Context(), functions.Mutation, "models:create", args)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.(string)})
}

func (h *ModelHandler) ListModels(c echo.Context) error {
	value, err := h.registry.Call(c.Request().Context(), functions.Query, "models:get", nil)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ListModelsResponse{Models: value.([]internal.Model)})
}
