package handler

import (
	"net/http"

	"github.com/abdusco/shelf/internal/functions"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type FunctionHandler struct {
	registry *functions.Registry
}

func NewFunctionHandler(registry *functions.Registry) *FunctionHandler {
	return &FunctionHandler{registry: registry}
}

type FunctionRequest struct {
	Path string         `json:"path"`
	Args map[string]any `json:"args"`
}

type FunctionResponse struct {
	Status       string `json:"status"`
	Value        any    `json:"value,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Query handles POST /api/query
func (h *FunctionHandler) Query(c echo.Context) error {
	return h.call(c, functions.Query)
}

// Mutation handles POST /api/mutation
func (h *FunctionHandler) Mutation(c echo.Context) error {
	return h.call(c, functions.Mutation)
}

func (h *FunctionHandler) call(c echo.Context, kind functions.Kind) error {
	var req FunctionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, FunctionResponse{Status: "error", ErrorMessage: "invalid request body"})
	}

	value, err := h.registry.Call(c.Request().Context(), kind, req.Path, req.Args)
	if err != nil {
		code := statusFor(err)
		if code >= http.StatusInternalServerError {
			log.Error().Err(err).Str("kind", string(kind)).Str("path", req.Path).Msg("function failed")
		}
		return c.JSON(code, FunctionResponse{Status: "error", ErrorMessage: err.Error()})
	}

	return c.JSON(http.StatusOK, FunctionResponse{Status: "success", Value: value})
}
