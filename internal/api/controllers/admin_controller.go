package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tourproof/internal/models/request_models"
	"tourproof/internal/services"
	"tourproof/pkg/utils"
)

type AdminController struct {
	adminService services.AdminServiceInterface
}

func NewAdminController(adminService services.AdminServiceInterface) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

// GetSettings godoc
// @Summary Ledger settings
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /admin/settings [get]
func (a *AdminController) GetSettings(c *gin.Context) {
	settings, err := a.adminService.GetSettings(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, settings, "Settings fetched successfully")
}

// SetVoteThreshold godoc
// @Summary Change the vote threshold
// @Description Applies to future votes only; verified tours stay verified
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.SetVoteThresholdRequest true "Threshold payload"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /admin/vote-threshold [put]
func (a *AdminController) SetVoteThreshold(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	var req request_models.SetVoteThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.adminService.SetVoteThreshold(c.Request.Context(), caller, req.Threshold); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Vote threshold updated")
}

// Pause godoc
// @Summary Pause ledger operations
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /admin/pause [post]
func (a *AdminController) Pause(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	if err := a.adminService.PauseOperations(c.Request.Context(), caller); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Operations paused")
}

// Resume godoc
// @Summary Resume ledger operations
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /admin/resume [post]
func (a *AdminController) Resume(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	if err := a.adminService.ResumeOperations(c.Request.Context(), caller); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Operations resumed")
}
