package server

import (
	"backoffice/internal/config"
	"backoffice/internal/handler"
	"backoffice/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health   *handler.HealthHandler
	Products *handler.ProductHandler
	Statuses *handler.StatusHandler
	Orders   *handler.OrderHandler
	Ledger   *handler.LedgerHandler
	Reports  *handler.ReportHandler
	Users    *handler.UserHandler
	Shop     *handler.ShopHandler
	Audit    *handler.AuditHandler
}

// /api 配下は全部「JWT必須 + 有効なユーザー」。admin 限定は各ハンドラで付ける。
func RegisterRoutes(e *echo.Echo, cfg config.Config, users middleware.UserLookup, h Handlers) {
	h.Health.RegisterRoutes(e)

	api := e.Group(
		"/api",
		middleware.AuthJWT(cfg),
		middleware.ActiveUserGuard(users),
	)

	h.Products.RegisterRoutes(api)
	h.Statuses.RegisterRoutes(api)
	h.Orders.RegisterRoutes(api)
	h.Ledger.RegisterRoutes(api)
	h.Reports.RegisterRoutes(api)
	h.Users.RegisterRoutes(api)
	h.Shop.RegisterRoutes(api)
	h.Audit.RegisterRoutes(api)
}
