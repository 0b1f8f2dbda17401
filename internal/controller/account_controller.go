package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Bulletin/internal/dto"
	"github.com/lshigami/Bulletin/internal/middleware"
	"github.com/lshigami/Bulletin/internal/service"
)

type AccountController struct {
	accountService service.AccountService
}

func NewAccountController(as service.AccountService) *AccountController {
	return &AccountController{accountService: as}
}

// Signup godoc
// @Summary Create an account and log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body dto.SignupRequest true "Username, email and the password twice"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or username taken"
// @Router /auth/signup [post]
func (c *AccountController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, err := c.accountService.Signup(ctx.Request.Context(), req)
	if err != nil {
		writeError(ctx, err, "")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Username and password"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Missing fields"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AccountController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, err := c.accountService.Login(ctx.Request.Context(), req)
	if err != nil {
		writeError(ctx, err, "")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Revoke the current access token
// @Tags Auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} dto.ErrorResponse "Login required"
// @Router /auth/logout [post]
func (c *AccountController) Logout(ctx *gin.Context) {
	if err := c.accountService.Logout(ctx.Request.Context(), middleware.CurrentClaims(ctx)); err != nil {
		writeError(ctx, err, "")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse "Login required"
// @Router /auth/me [get]
func (c *AccountController) Me(ctx *gin.Context) {
	me, err := c.accountService.Me(ctx.Request.Context(), middleware.CurrentUser(ctx).ID)
	if err != nil {
		writeError(ctx, err, "")
		return
	}
	ctx.JSON(http.StatusOK, me)
}
