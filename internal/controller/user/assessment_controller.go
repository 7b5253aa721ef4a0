package user

import (
	"net/http"
	"strconv"

	"github.com/founderfit/cofounder-api/internal/controller"
	"github.com/founderfit/cofounder-api/internal/dto"
	"github.com/founderfit/cofounder-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AssessmentController struct {
	assessmentService service.AssessmentService
}

func NewAssessmentController(as service.AssessmentService) *AssessmentController {
	return &AssessmentController{assessmentService: as}
}

// StartOrResume godoc
// @Summary Start or resume a working-style assessment
// @Description Returns the user's open session with its fixed question list and collected answers, or creates a new balanced 20-question session.
// @Tags Assessments
// @Accept json
// @Produce json
// @Param request body dto.StartAssessmentDTO true "Requesting user"
// @Success 200 {object} dto.AssessmentSessionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request or empty question catalog"
// @Router /assessments/start [post]
func (c *AssessmentController) StartOrResume(ctx *gin.Context) {
	var req dto.StartAssessmentDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	session, err := c.assessmentService.StartOrResume(req.UserID)
	if err != nil {
		log.Warn().Err(err).Uint("userID", req.UserID).Msg("StartOrResume failed")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// Submit godoc
// @Summary Submit a completed assessment session
// @Description Scores the session and blends the result into the user's working-style profile. Idempotent per question; a completed session cannot be submitted twice.
// @Tags Assessments
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param submission body dto.SubmitAssessmentDTO true "All responses for the session"
// @Success 200 {object} dto.WorkingStyleProfileDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session already completed"
// @Router /assessments/{session_id}/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	sessionID, err := strconv.ParseUint(ctx.Param("session_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid session ID format"})
		return
	}

	var req dto.SubmitAssessmentDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	profile, err := c.assessmentService.Submit(req.UserID, uint(sessionID), req)
	if err != nil {
		log.Warn().Err(err).Uint64("sessionID", sessionID).Msg("Assessment submit failed")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// GetProfile godoc
// @Summary Get a user's working-style profile
// @Tags Assessments
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.WorkingStyleProfileDTO
// @Failure 404 {object} dto.ErrorResponse "No profile yet"
// @Router /users/{user_id}/profile [get]
func (c *AssessmentController) GetProfile(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("user_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user ID format"})
		return
	}

	profile, err := c.assessmentService.GetProfile(uint(userID))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}
