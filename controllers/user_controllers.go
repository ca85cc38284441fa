package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/delight-cuisine/middlewares"
	"github.com/yeremiapane/delight-cuisine/services"
	"github.com/yeremiapane/delight-cuisine/utils"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// Register -> always creates a customer account
func (uc *UserController) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := uc.Users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "User registered successfully", user)
}

// Login user -> return JWT pair
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}

	tokens, err := uc.Users.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Login successful", tokens)
}

func (uc *UserController) Refresh(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}

	access, err := uc.Users.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Token refreshed", gin.H{"access_token": access})
}

// GetProfile -> user from JWT
func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := uc.Users.Me(c.Request.Context(), middlewares.ActorFromContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", user)
}

// respondAuthError reports credential failures as 401 rather than the
// ownership 403 used elsewhere.
func respondAuthError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrUnauthorized) {
		utils.RespondErrorKind(c, http.StatusUnauthorized, string(services.KindUnauthorized), err)
		return
	}
	respondServiceError(c, err)
}
