package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tourproof/internal/models/request_models"
	"tourproof/internal/models/response_models"
	"tourproof/internal/services"
	"tourproof/pkg/utils"
)

type TourController struct {
	tourService    services.TourServiceInterface
	voteService    services.VoteServiceInterface
	checkInService services.CheckInServiceInterface
	accountService services.AccountServiceInterface
}

func NewTourController(
	tourService services.TourServiceInterface,
	voteService services.VoteServiceInterface,
	checkInService services.CheckInServiceInterface,
	accountService services.AccountServiceInterface,
) *TourController {
	return &TourController{
		tourService:    tourService,
		voteService:    voteService,
		checkInService: checkInService,
		accountService: accountService,
	}
}

// ListTours godoc
// @Summary List tours
// @Description Paginated tour registry in creation order
// @Tags Tours
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Router /tours [get]
func (t *TourController) ListTours(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}

	tours, err := t.tourService.ListTours(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tours, "Tours fetched successfully")
}

// CreateTour godoc
// @Summary Create a tour
// @Description Register a new tour owned by the caller
// @Tags Tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateTourRequest true "Tour payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /tours [post]
func (t *TourController) CreateTour(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	var req request_models.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	tourID, err := t.tourService.CreateTour(c.Request.Context(), caller, req.ImageRef, req.Location)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, response_models.CreateTourResponse{TourID: tourID}, "Tour created successfully")
}

// GetTour godoc
// @Summary Get a tour
// @Tags Tours
// @Produce json
// @Param id path int true "Tour ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tours/{id} [get]
func (t *TourController) GetTour(c *gin.Context) {
	tourID, ok := tourIDParam(c)
	if !ok {
		return
	}

	tour, err := t.tourService.GetTour(c.Request.Context(), tourID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tour, "Tour fetched successfully")
}

// UpdateTour godoc
// @Summary Update a tour
// @Description Replace image and location while the tour is unverified
// @Tags Tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tour ID"
// @Param request body request_models.UpdateTourRequest true "Tour payload"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /tours/{id} [put]
func (t *TourController) UpdateTour(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	tourID, ok := tourIDParam(c)
	if !ok {
		return
	}
	var req request_models.UpdateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := t.tourService.UpdateTour(c.Request.Context(), tourID, caller, req.ImageRef, req.Location); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Tour updated successfully")
}

// DeactivateTour godoc
// @Summary Deactivate a tour
// @Tags Tours
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tour ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /tours/{id}/deactivate [post]
func (t *TourController) DeactivateTour(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	tourID, ok := tourIDParam(c)
	if !ok {
		return
	}

	if err := t.tourService.DeactivateTour(c.Request.Context(), tourID, caller); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Tour deactivated successfully")
}

// Upvote godoc
// @Summary Upvote a tour
// @Description Vote once per tour, backed by the caller's stake
// @Tags Tours
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tour ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /tours/{id}/upvote [post]
func (t *TourController) Upvote(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	tourID, ok := tourIDParam(c)
	if !ok {
		return
	}

	stake, err := t.accountService.StakeOf(c.Request.Context(), caller)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	result, err := t.voteService.Upvote(c.Request.Context(), tourID, caller, stake)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Vote recorded")
}

// MyVote godoc
// @Summary Check whether the caller has voted for a tour
// @Tags Tours
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tour ID"
// @Success 200 {object} utils.APIResponse{data=response_models.VoteStatus}
// @Failure 404 {object} utils.APIResponse
// @Router /tours/{id}/votes/me [get]
func (t *TourController) MyVote(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	tourID, ok := tourIDParam(c)
	if !ok {
		return
	}

	voted, err := t.voteService.HasVoted(c.Request.Context(), tourID, caller)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.VoteStatus{TourID: tourID, Voted: voted}, "Vote status fetched")
}

// CheckIn godoc
// @Summary Check in to a verified tour
// @Description Location must match the tour exactly; credits creator and participant
// @Tags Tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tour ID"
// @Param request body request_models.CheckInRequest true "Check-in payload"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /tours/{id}/check-ins [post]
func (t *TourController) CheckIn(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	tourID, ok := tourIDParam(c)
	if !ok {
		return
	}
	var req request_models.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	receipt, err := t.checkInService.CheckIn(c.Request.Context(), tourID, caller, req.ImageRef, req.Location)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, receipt, "Check-in confirmed")
}

// ListCheckIns godoc
// @Summary List check-ins of a tour
// @Tags Tours
// @Produce json
// @Param id path int true "Tour ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tours/{id}/check-ins [get]
func (t *TourController) ListCheckIns(c *gin.Context) {
	tourID, ok := tourIDParam(c)
	if !ok {
		return
	}

	checkIns, err := t.checkInService.ListCheckIns(c.Request.Context(), tourID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, checkIns, "Check-ins fetched successfully")
}
