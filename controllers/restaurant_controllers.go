package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/delight-cuisine/middlewares"
	"github.com/yeremiapane/delight-cuisine/services"
	"github.com/yeremiapane/delight-cuisine/utils"
)

type RestaurantController struct {
	Status *services.RestaurantStatusService
}

func NewRestaurantController(status *services.RestaurantStatusService) *RestaurantController {
	return &RestaurantController{Status: status}
}

func (rc *RestaurantController) GetStatus(c *gin.Context) {
	status, err := rc.Status.Get(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant status", status)
}

func (rc *RestaurantController) UpdateStatus(c *gin.Context) {
	var body struct {
		IsOpen  *bool   `json:"is_open"`
		Message *string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}

	status, err := rc.Status.Update(c.Request.Context(), middlewares.ActorFromContext(c), body.IsOpen, body.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant status updated successfully", status)
}

func (rc *RestaurantController) ToggleStatus(c *gin.Context) {
	status, err := rc.Status.Toggle(c.Request.Context(), middlewares.ActorFromContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant status toggled successfully", status)
}
