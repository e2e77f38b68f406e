package handler

import (
	"net/http"
	"strconv"

	"backoffice/internal/domain/model"
	"backoffice/internal/middleware"
	"backoffice/internal/repository"
	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuditHandler struct {
	uc *usecase.AuditUsecase
}

func NewAuditHandler(uc *usecase.AuditUsecase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

func (h *AuditHandler) RegisterRoutes(api *echo.Group) {
	api.GET("/audit-logs", h.list, middleware.AdminRoleGuard())
}

func (h *AuditHandler) list(c echo.Context) error {
	f := repository.AuditLogFilter{
		ActorUserID: queryString(c, "actor_user_id"),
		ResourceID:  queryString(c, "resource_id"),
	}
	if v := c.QueryParam("action"); v != "" {
		a := model.AuditAction(v)
		f.Action = &a
	}
	if v := c.QueryParam("resource_type"); v != "" {
		rt := model.AuditResourceType(v)
		f.ResourceType = &rt
	}

	var ok bool
	if f.CreatedFrom, ok = queryTime(c, "from"); !ok {
		return badRequest(c, "invalid from")
	}
	if f.CreatedTo, ok = queryTime(c, "to"); !ok {
		return badRequest(c, "invalid to")
	}

	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "invalid limit")
		}
		f.Limit = n
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "invalid offset")
		}
		f.Offset = n
	}

	out, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
