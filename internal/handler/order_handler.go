package handler

import (
	"net/http"
	"strconv"

	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc   *usecase.OrderUsecase
	shop *usecase.ShopUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase, shop *usecase.ShopUsecase) *OrderHandler {
	return &OrderHandler{uc: uc, shop: shop}
}

type OrderLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type OrderCreateRequest struct {
	CustomerID string             `json:"customer_id"`
	Items      []OrderLineRequest `json:"items"`
	Status     string             `json:"status"`
	Deposit    usecase.Money      `json:"deposit"`
}

func (h *OrderHandler) RegisterRoutes(api *echo.Group) {
	api.POST("/orders", h.create)
	api.GET("/orders", h.list)
	api.GET("/orders/:id", h.detail)
	api.GET("/orders/:id/invoice", h.invoice)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	lines := make([]usecase.OrderLineInput, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, usecase.OrderLineInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	out, err := h.uc.Build(actorContext(c), usecase.BuildOrderInput{
		CustomerID:    req.CustomerID,
		Lines:         lines,
		InitialStatus: req.Status,
		Deposit:       req.Deposit.Decimal(),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// ?exclude_deleted=true で削除済みを除く（既定は全件）
func (h *OrderHandler) list(c echo.Context) error {
	exclude := false
	if v := c.QueryParam("exclude_deleted"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "invalid exclude_deleted")
		}
		exclude = b
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListOrdersInput{
		ExcludeDeleted: exclude,
		CustomerID:     c.QueryParam("customer_id"),
		Status:         c.QueryParam("status"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) invoice(c echo.Context) error {
	out, err := h.shop.Invoice(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
