package middleware

import (
	"context"
	"net/http"

	"backoffice/internal/logging"

	"github.com/labstack/echo/v4"
)

// ユーザー台帳に存在し、削除されていないかを答える。
type UserLookup interface {
	IsActive(ctx context.Context, userID string) (bool, error)
}

// JWTのsubが台帳上の有効なユーザーか確認。
// 削除済みユーザーのトークンは期限前でも401にする。
func ActiveUserGuard(users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			userID, ok := c.Get(CtxUserIDKey).(string)
			if !ok || userID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			ctx := c.Request().Context()
			active, err := users.IsActive(ctx, userID)
			if err != nil {
				logging.FromContext(ctx).Error("active_user_lookup_error", "user_id", userID, "error", err)
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}
			if !active {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			return next(c)
		}
	}
}
