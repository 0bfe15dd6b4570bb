package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tourproof/internal/models/response_models"
	"tourproof/internal/services"
	"tourproof/pkg/utils"
)

type RewardController struct {
	rewardService services.RewardServiceInterface
}

func NewRewardController(rewardService services.RewardServiceInterface) *RewardController {
	return &RewardController{
		rewardService: rewardService,
	}
}

// MyBalance godoc
// @Summary Reward balance of the caller
// @Tags Rewards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /rewards/me [get]
func (r *RewardController) MyBalance(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	r.respondBalance(c, caller)
}

// GetBalance godoc
// @Summary Reward balance of an account
// @Tags Rewards
// @Produce json
// @Param accountId path string true "Account ID"
// @Success 200 {object} utils.APIResponse
// @Router /rewards/{accountId} [get]
func (r *RewardController) GetBalance(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid account id")
		return
	}
	r.respondBalance(c, accountID)
}

func (r *RewardController) respondBalance(c *gin.Context, accountID uuid.UUID) {
	points, err := r.rewardService.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.Balance{AccountID: accountID.String(), Points: points}, "Balance fetched successfully")
}
