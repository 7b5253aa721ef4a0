package admin

import (
	"net/http"
	"strconv"

	"github.com/founderfit/cofounder-api/internal/controller"
	"github.com/founderfit/cofounder-api/internal/dto"
	"github.com/founderfit/cofounder-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type QuestionController struct {
	questionService service.AdminQuestionService
}

func NewQuestionController(qs service.AdminQuestionService) *QuestionController {
	return &QuestionController{questionService: qs}
}

// CreateQuestion godoc
// @Summary (Admin) Add a quiz question to the catalog
// @Description Creates a forced-choice question with per-option delta vectors. Delta maps are validated here; questions are immutable afterwards.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param question body dto.QuestionCreateDTO true "Question data"
// @Success 201 {object} dto.AdminQuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid question payload"
// @Router /admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.questionService.CreateQuestion(req)
	if err != nil {
		log.Warn().Err(err).Msg("CreateQuestion failed")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// ListQuestions godoc
// @Summary (Admin) List all quiz questions
// @Description Returns the full catalog including inactive questions and delta vectors.
// @Tags Admin - Questions
// @Produce json
// @Success 200 {array} dto.AdminQuestionDTO
// @Router /admin/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	questions, err := c.questionService.ListQuestions()
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// DeactivateQuestion godoc
// @Summary (Admin) Deactivate a quiz question
// @Description Excludes the question from future selection. Existing sessions keep it for replay.
// @Tags Admin - Questions
// @Param id path int true "Question ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{id}/deactivate [patch]
func (c *QuestionController) DeactivateQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID format"})
		return
	}

	if err := c.questionService.DeactivateQuestion(uint(id)); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
