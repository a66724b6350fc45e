package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	GenerateAccessToken(user *models.User) (string, error)
}

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService services.UserServicer
	tokens      TokenIssuer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{userService: userService, tokens: tokens}
}

// CredentialsRequest is the register and login payload
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"userId"`
	Token   string `json:"token"`
}

// Register handles user registration
// @Summary     Register a new user
// @Description Register a new user with email and password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body CredentialsRequest true "User credentials"
// @Success     201 {object} AuthResponse
// @Failure     400 {object} errors.ErrorBody "Invalid input"
// @Failure     409 {object} errors.ErrorBody "Email already registered"
// @Failure     500 {object} errors.ErrorBody "Server error"
// @Router      /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, "User registered successfully", user)
}

// Login handles user login
// @Summary     Log in
// @Description Verify credentials and return the user id with an access token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body CredentialsRequest true "User credentials"
// @Success     200 {object} AuthResponse
// @Failure     400 {object} errors.ErrorBody "Invalid input"
// @Failure     401 {object} errors.ErrorBody "Invalid credentials"
// @Failure     500 {object} errors.ErrorBody "Server error"
// @Router      /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	user, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, "Login successful", user)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, message string, user *models.User) {
	token, err := h.tokens.GenerateAccessToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(status, AuthResponse{
		Message: message,
		UserID:  user.ID,
		Token:   token,
	})
}
