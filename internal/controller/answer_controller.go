package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Bulletin/internal/dto"
	"github.com/lshigami/Bulletin/internal/middleware"
	"github.com/lshigami/Bulletin/internal/service"
)

type AnswerController struct {
	answerService service.AnswerService
	voteService   service.VoteService
}

func NewAnswerController(as service.AnswerService, vs service.VoteService) *AnswerController {
	return &AnswerController{answerService: as, voteService: vs}
}

// CreateAnswer godoc
// @Summary Answer a question
// @Tags Answers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Param answer body dto.AnswerRequest true "Markdown content"
// @Success 201 {object} dto.AnswerResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Login required"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{question_id}/answers [post]
func (c *AnswerController) CreateAnswer(ctx *gin.Context) {
	questionID, ok := parseID(ctx, "question_id", "Question")
	if !ok {
		return
	}
	var req dto.AnswerRequest
	if !bindJSON(ctx, &req) {
		return
	}
	answer, err := c.answerService.CreateAnswer(ctx.Request.Context(), middleware.CurrentUser(ctx), questionID, req)
	if err != nil {
		writeError(ctx, err, "")
		return
	}
	ctx.Header("Location", QuestionPath(questionID, answer.ID))
	ctx.JSON(http.StatusCreated, answer)
}

// GetAnswer godoc
// @Summary Get one answer
// @Tags Answers
// @Produce json
// @Param answer_id path int true "Answer ID"
// @Success 200 {object} dto.AnswerResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Router /answers/{answer_id} [get]
func (c *AnswerController) GetAnswer(ctx *gin.Context) {
	id, ok := parseID(ctx, "answer_id", "Answer")
	if !ok {
		return
	}
	answer, err := c.answerService.GetAnswer(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err, "")
		return
	}
	ctx.JSON(http.StatusOK, answer)
}

// UpdateAnswer godoc
// @Summary Edit an answer
// @Tags Answers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param answer_id path int true "Answer ID"
// @Param answer body dto.AnswerRequest true "New content"
// @Success 200 {object} dto.AnswerResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Router /answers/{answer_id} [put]
func (c *AnswerController) UpdateAnswer(ctx *gin.Context) {
	id, ok := parseID(ctx, "answer_id", "Answer")
	if !ok {
		return
	}
	var req dto.AnswerRequest
	if !bindJSON(ctx, &req) {
		return
	}
	answer, err := c.answerService.UpdateAnswer(ctx.Request.Context(), middleware.CurrentUser(ctx), id, req)
	if err != nil {
		writeError(ctx, err, "no permission to modify this answer")
		return
	}
	ctx.JSON(http.StatusOK, answer)
}

// DeleteAnswer godoc
// @Summary Delete an answer
// @Description Responds with the question the answer belonged to.
// @Tags Answers
// @Produce json
// @Security BearerAuth
// @Param answer_id path int true "Answer ID"
// @Success 200 {object} dto.RedirectResponse
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Router /answers/{answer_id} [delete]
func (c *AnswerController) DeleteAnswer(ctx *gin.Context) {
	id, ok := parseID(ctx, "answer_id", "Answer")
	if !ok {
		return
	}
	questionID, err := c.answerService.DeleteAnswer(ctx.Request.Context(), middleware.CurrentUser(ctx), id)
	if err != nil {
		writeError(ctx, err, "no permission to delete this answer")
		return
	}
	ctx.JSON(http.StatusOK, dto.RedirectResponse{Message: "answer deleted", Redirect: QuestionPath(questionID, 0)})
}

// VoteAnswer godoc
// @Summary Recommend an answer
// @Description Voting twice counts once. Authors cannot vote for their own answer.
// @Tags Votes
// @Produce json
// @Security BearerAuth
// @Param answer_id path int true "Answer ID"
// @Success 200 {object} dto.VoteResponse
// @Failure 400 {object} dto.ErrorResponse "Own answer"
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Router /answers/{answer_id}/vote [post]
func (c *AnswerController) VoteAnswer(ctx *gin.Context) {
	id, ok := parseID(ctx, "answer_id", "Answer")
	if !ok {
		return
	}
	result, err := c.voteService.VoteAnswer(ctx.Request.Context(), middleware.CurrentUser(ctx), id)
	if err != nil {
		writeError(ctx, err, "")
		return
	}
	ctx.JSON(http.StatusOK, result)
}
