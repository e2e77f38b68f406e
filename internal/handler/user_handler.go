package handler

import (
	"net/http"

	"backoffice/internal/domain/model"
	"backoffice/internal/middleware"
	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	uc *usecase.UserUsecase
}

func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

type UserRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
	Address  string     `json:"address"`
	Role     model.Role `json:"role"`
	Password string     `json:"password"`
}

func (r UserRequest) input() usecase.UserInput {
	return usecase.UserInput{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Address:  r.Address,
		Role:     r.Role,
		Password: r.Password,
	}
}

// 一覧・参照は全ロール、変更は admin のみ
func (h *UserHandler) RegisterRoutes(api *echo.Group) {
	admin := middleware.AdminRoleGuard()

	api.GET("/users", h.list)
	api.GET("/users/:id", h.detail)
	api.POST("/users", h.create, admin)
	api.PUT("/users/:id", h.update, admin)
	api.DELETE("/users/:id", h.delete, admin)
}

func (h *UserHandler) list(c echo.Context) error {
	var role *model.Role
	if v := c.QueryParam("role"); v != "" {
		r := model.Role(v)
		role = &r
	}

	out, err := h.uc.List(c.Request().Context(), role)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) detail(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) create(c echo.Context) error {
	var req UserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Create(actorContext(c), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *UserHandler) update(c echo.Context) error {
	var req UserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Update(actorContext(c), c.Param("id"), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(actorContext(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
