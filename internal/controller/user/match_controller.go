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

type MatchController struct {
	matchingService service.MatchingService
}

func NewMatchController(ms service.MatchingService) *MatchController {
	return &MatchController{matchingService: ms}
}

// RunMatching godoc
// @Summary Run matching for a user
// @Description Scores the user against the eligible candidate pool and persists mirrored match edges for everyone at or above the threshold, capped to the top 20.
// @Tags Matches
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.RunMatchingResultDTO
// @Failure 400 {object} dto.ErrorResponse "User not eligible"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{user_id}/matches/run [post]
func (c *MatchController) RunMatching(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("user_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user ID format"})
		return
	}

	result, err := c.matchingService.RunMatching(uint(userID))
	if err != nil {
		log.Warn().Err(err).Uint64("userID", userID).Msg("RunMatching failed")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ListActiveMatches godoc
// @Summary List a user's active matches
// @Description Non-terminal, non-expired matches; expiry is evaluated at read time.
// @Tags Matches
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} dto.MatchDTO
// @Router /users/{user_id}/matches [get]
func (c *MatchController) ListActiveMatches(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("user_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user ID format"})
		return
	}

	matches, err := c.matchingService.ListActiveMatches(uint(userID))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, matches)
}

// Respond godoc
// @Summary Respond to a match
// @Description Marks the user's edge interested or rejected. Mutual interest promotes both edges to accepted; rejection cascades to an unresponded mirror.
// @Tags Matches
// @Accept json
// @Produce json
// @Param match_id path string true "Match ID"
// @Param response body dto.RespondToMatchDTO true "Acting user and action"
// @Success 200 {object} dto.RespondResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid action"
// @Failure 404 {object} dto.ErrorResponse "Match not found"
// @Failure 409 {object} dto.ErrorResponse "Match already settled"
// @Router /matches/{match_id}/respond [post]
func (c *MatchController) Respond(ctx *gin.Context) {
	matchID := ctx.Param("match_id")
	if matchID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing match ID"})
		return
	}

	var req dto.RespondToMatchDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.matchingService.Respond(req.UserID, matchID, req.Action)
	if err != nil {
		log.Warn().Err(err).Str("matchID", matchID).Uint("userID", req.UserID).Msg("Respond failed")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
