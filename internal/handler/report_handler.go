package handler

import (
	"net/http"

	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ReportHandler struct {
	uc *usecase.ReportUsecase
}

func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/reports")
	g.GET("/sales", h.sales)
	g.GET("/low-stock", h.lowStock)
	g.GET("/transactions", h.transactions)
	g.GET("/dashboard", h.dashboard)
}

// period（default daily）
func (h *ReportHandler) sales(c echo.Context) error {
	raw := c.QueryParam("period")
	if raw == "" {
		raw = string(usecase.PeriodDaily)
	}
	period, err := usecase.ParseReportPeriod(raw)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.SalesByPeriod(c.Request().Context(), period)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) lowStock(c echo.Context) error {
	threshold, ok := queryInt64(c, "threshold")
	if !ok {
		return badRequest(c, "invalid threshold")
	}

	out, err := h.uc.LowStock(c.Request().Context(), threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) transactions(c echo.Context) error {
	out, err := h.uc.TransactionHistory(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) dashboard(c echo.Context) error {
	out, err := h.uc.Dashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
