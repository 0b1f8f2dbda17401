package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Bulletin/internal/dto"
	"github.com/lshigami/Bulletin/internal/errorz"
	"github.com/lshigami/Bulletin/internal/middleware"
	"github.com/rs/zerolog/log"
)

// Router bundles what RegisterRoutes needs beyond the controllers.
type Router struct {
	Questions *QuestionController
	Answers   *AnswerController
	Accounts  *AccountController
	// Authenticate runs on every API route; Limit only on mutations.
	Authenticate gin.HandlerFunc
	Limit        gin.HandlerFunc
}

func (r *Router) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(r.Authenticate)

	// Read routes are open to anonymous visitors.
	api.GET("/questions", r.Questions.ListQuestions)
	api.GET("/questions/:question_id", r.Questions.GetQuestion)
	api.GET("/answers/:answer_id", r.Answers.GetAnswer)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", r.Limit, r.Accounts.Signup)
		authGroup.POST("/login", r.Limit, r.Accounts.Login)
		authGroup.POST("/logout", middleware.RequireAuth(), r.Accounts.Logout)
		authGroup.GET("/me", middleware.RequireAuth(), r.Accounts.Me)
	}

	write := api.Group("", middleware.RequireAuth(), r.Limit)
	{
		write.POST("/questions", r.Questions.CreateQuestion)
		write.PUT("/questions/:question_id", r.Questions.UpdateQuestion)
		write.DELETE("/questions/:question_id", r.Questions.DeleteQuestion)
		write.POST("/questions/:question_id/vote", r.Questions.VoteQuestion)
		write.POST("/questions/:question_id/answers", r.Answers.CreateAnswer)

		write.PUT("/answers/:answer_id", r.Answers.UpdateAnswer)
		write.DELETE("/answers/:answer_id", r.Answers.DeleteAnswer)
		write.POST("/answers/:answer_id/vote", r.Answers.VoteAnswer)
	}
}

// QuestionPath is the detail view a refused action sends the client back to.
func QuestionPath(questionID, answerID uint) string {
	if answerID != 0 {
		return fmt.Sprintf("/api/v1/questions/%d#answer_%d", questionID, answerID)
	}
	return fmt.Sprintf("/api/v1/questions/%d", questionID)
}

func parseID(ctx *gin.Context, param, label string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + label + " ID format"})
		return 0, false
	}
	return uint(id), true
}

func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return false
	}
	return true
}

// writeError maps a service error onto a response. refusal is the notice
// shown when the actor is not allowed to modify the target.
func writeError(ctx *gin.Context, err error, refusal string) {
	if ve, ok := errorz.AsValidation(err); ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid input", Fields: ve.Fields})
		return
	}
	if n, ok := errorz.AsNotice(err); ok {
		status, msg := http.StatusForbidden, refusal
		if errors.Is(n.Err, errorz.ErrSelfVote) {
			status, msg = http.StatusBadRequest, n.Err.Error()
		}
		ctx.JSON(status, dto.ErrorResponse{Message: msg, Redirect: QuestionPath(n.QuestionID, n.AnswerID)})
		return
	}

	switch {
	case errors.Is(err, errorz.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "not found"})
	case errors.Is(err, errorz.ErrPermissionDenied):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: refusal})
	case errors.Is(err, errorz.ErrUnauthenticated):
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: err.Error(), Redirect: middleware.LoginPath})
	case errors.Is(err, errorz.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Str("method", ctx.Request.Method).Str("path", ctx.Request.URL.Path).Msg("Request failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal error"})
	}
}
