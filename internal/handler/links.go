package handler

import (
	"net/http"

	"github.com/abdusco/shelf/internal"
	"github.com/abdusco/shelf/internal/functions"
	"github.com/labstack/echo/v4"
)

type LinkHandler struct {
	registry *functions.Registry
}

func NewLinkHandler(registry *functions.Registry) *LinkHandler {
	return &LinkHandler{registry: registry}
}

type ListLinksResponse struct {
	Links []internal.Link `json:"links"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

func (h *LinkHandler) CreateLink(c echo.Context) error {
	var args map[string]any
	if err := c.Bind(&args); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	id, err := h.registry.Call(c.Request().Context(), functions.Mutation, "links:create", args)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.(string)})
}

func (h *LinkHandler) ListLinks(c echo.Context) error {
	value, err := h.registry.Call(c.Request().Context(), functions.Query, "links:get", nil)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ListLinksResponse{Links: value.([]internal.Link)})
}
