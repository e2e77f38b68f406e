package handler

import (
	"net/http"

	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 作成済み注文の更新（ステータス・入金・削除）
type LedgerHandler struct {
	uc *usecase.LedgerUsecase
}

func NewLedgerHandler(uc *usecase.LedgerUsecase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

type PaymentRequest struct {
	AmountPaid *usecase.Money `json:"amount_paid"`
}

func (h *LedgerHandler) RegisterRoutes(api *echo.Group) {
	api.PUT("/orders/:id/status", h.updateStatus)
	api.PUT("/orders/:id/payment", h.recordPayment)
	api.DELETE("/orders/:id", h.delete)
}

func (h *LedgerHandler) updateStatus(c echo.Context) error {
	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.SetStatus(actorContext(c), c.Param("id"), req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LedgerHandler) recordPayment(c echo.Context) error {
	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.AmountPaid == nil {
		return badRequest(c, "amount_paid required")
	}

	out, err := h.uc.RecordPayment(actorContext(c), c.Param("id"), req.AmountPaid.Decimal())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LedgerHandler) delete(c echo.Context) error {
	if err := h.uc.SoftDelete(actorContext(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
