package handler

import (
	"net/http"

	"backoffice/internal/domain/model"
	"backoffice/internal/middleware"
	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
)

type StatusHandler struct {
	uc *usecase.StatusUsecase
}

func NewStatusHandler(uc *usecase.StatusUsecase) *StatusHandler {
	return &StatusHandler{uc: uc}
}

type StatusCreateRequest struct {
	Name  string            `json:"name"`
	Color model.StatusColor `json:"color"`
}

// 省略したフィールドは変更しない
type StatusUpdateRequest struct {
	Name  *string            `json:"name"`
	Color *model.StatusColor `json:"color"`
}

func (h *StatusHandler) RegisterRoutes(api *echo.Group) {
	admin := middleware.AdminRoleGuard()

	api.GET("/statuses", h.list)
	api.POST("/statuses", h.create, admin)
	api.PUT("/statuses/:id", h.update, admin)
	api.DELETE("/statuses/:id", h.delete, admin)
}

func (h *StatusHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StatusHandler) create(c echo.Context) error {
	var req StatusCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Create(actorContext(c), req.Name, req.Color)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *StatusHandler) update(c echo.Context) error {
	var req StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Update(actorContext(c), c.Param("id"), usecase.StatusUpdateInput{Name: req.Name, Color: req.Color})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StatusHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(actorContext(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
