package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Bulletin/internal/dto"
	"github.com/lshigami/Bulletin/internal/middleware"
	"github.com/lshigami/Bulletin/internal/service"
)

type QuestionController struct {
	questionService service.QuestionService
	voteService     service.VoteService
}

func NewQuestionController(qs service.QuestionService, vs service.VoteService) *QuestionController {
	return &QuestionController{questionService: qs, voteService: vs}
}

// ListQuestions godoc
// @Summary List questions
// @Description Newest first, ten per page. kw filters by subject, content, author or answers.
// @Tags Questions
// @Produce json
// @Param page query int false "1-based page number"
// @Param kw query string false "Search keyword"
// @Success 200 {object} dto.QuestionPageDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	page := service.ParsePage(ctx.Query("page"))
	result, err := c.questionService.ListQuestions(ctx.Request.Context(), ctx.Query("kw"), page)
	if err != nil {
		writeError(ctx, err, "")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetQuestion godoc
// @Summary Get a question with its answers
// @Tags Questions
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.QuestionDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Question ID format"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{question_id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, ok := parseID(ctx, "question_id", "Question")
	if !ok {
		return
	}
	detail, err := c.questionService.GetQuestion(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err, "")
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// CreateQuestion godoc
// @Summary Ask a question
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question body dto.QuestionRequest true "Subject and markdown content"
// @Success 201 {object} dto.QuestionDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Login required"
// @Router /questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.QuestionRequest
	if !bindJSON(ctx, &req) {
		return
	}
	detail, err := c.questionService.CreateQuestion(ctx.Request.Context(), middleware.CurrentUser(ctx), req)
	if err != nil {
		writeError(ctx, err, "")
		return
	}
	ctx.JSON(http.StatusCreated, detail)
}

// UpdateQuestion godoc
// @Summary Edit a question
// @Description Only the author may edit. Refusals carry a redirect to the question.
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Param question body dto.QuestionRequest true "New subject and content"
// @Success 200 {object} dto.QuestionDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Login required"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{question_id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, ok := parseID(ctx, "question_id", "Question")
	if !ok {
		return
	}
	var req dto.QuestionRequest
	if !bindJSON(ctx, &req) {
		return
	}
	detail, err := c.questionService.UpdateQuestion(ctx.Request.Context(), middleware.CurrentUser(ctx), id, req)
	if err != nil {
		writeError(ctx, err, "no permission to modify this question")
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// DeleteQuestion godoc
// @Summary Delete a question and all of its answers
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.RedirectResponse
// @Failure 401 {object} dto.ErrorResponse "Login required"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{question_id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, ok := parseID(ctx, "question_id", "Question")
	if !ok {
		return
	}
	if err := c.questionService.DeleteQuestion(ctx.Request.Context(), middleware.CurrentUser(ctx), id); err != nil {
		writeError(ctx, err, "no permission to delete this question")
		return
	}
	ctx.JSON(http.StatusOK, dto.RedirectResponse{Message: "question deleted", Redirect: "/api/v1/questions"})
}

// VoteQuestion godoc
// @Summary Recommend a question
// @Description Voting twice counts once. Authors cannot vote for their own question.
// @Tags Votes
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.VoteResponse
// @Failure 400 {object} dto.ErrorResponse "Own question"
// @Failure 401 {object} dto.ErrorResponse "Login required"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{question_id}/vote [post]
func (c *QuestionController) VoteQuestion(ctx *gin.Context) {
	id, ok := parseID(ctx, "question_id", "Question")
	if !ok {
		return
	}
	result, err := c.voteService.VoteQuestion(ctx.Request.Context(), middleware.CurrentUser(ctx), id)
	if err != nil {
		writeError(ctx, err, "")
		return
	}
	ctx.JSON(http.StatusOK, result)
}
