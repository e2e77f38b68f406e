package handler

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ShopHandler struct {
	uc *usecase.ShopUsecase
}

func NewShopHandler(uc *usecase.ShopUsecase) *ShopHandler {
	return &ShopHandler{uc: uc}
}

type ShopInfoRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	InvoiceFooter string `json:"invoice_footer"`
}

func (h *ShopHandler) RegisterRoutes(api *echo.Group) {
	api.GET("/shop-info", h.get)
	api.PUT("/shop-info", h.update, middleware.AdminRoleGuard())
}

func (h *ShopHandler) get(c echo.Context) error {
	out, err := h.uc.GetShopInfo(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShopHandler) update(c echo.Context) error {
	var req ShopInfoRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.UpdateShopInfo(actorContext(c), usecase.ShopInfoInput{
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		InvoiceFooter: req.InvoiceFooter,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
