package api

import (
	"errors"
	"net/http"

	"library-api/internal/handler/dto/request"
	"library-api/internal/handler/dto/response"
	"library-api/internal/handler/httperr"
	"library-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
}

func NewAuthHandler(authCommands commands.AuthCommands) *AuthHandler {
	return &AuthHandler{authCommands: authCommands}
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body request.RegisterRequest true "Registration data"
// @Success      201 {object} response.Envelope{data=response.RegisterResponse}
// @Failure      400 {object} httperr.Response
// @Failure      409 {object} httperr.Response
// @Failure      500 {object} httperr.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format")
		return
	}

	userID, err := h.authCommands.Register(c.Request.Context(), commands.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmailTaken):
			httperr.AbortWithError(c, http.StatusConflict, err, "Email already registered")
		case errors.Is(err, commands.ErrInvalidUser):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid registration data")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to register user")
		}
		return
	}

	c.JSON(http.StatusCreated, response.OK(response.RegisterResponse{InsertedID: userID}))
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body request.LoginRequest true "Credentials"
// @Success      200 {object} response.Envelope{data=response.LoginResponse}
// @Failure      400 {object} httperr.Response
// @Failure      401 {object} httperr.Response
// @Failure      500 {object} httperr.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format")
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, commands.ErrInvalidCredentials) {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password")
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, response.OK(response.LoginResponse{
		UserID:      result.UserID,
		Email:       result.Email,
		AccessToken: result.AccessToken,
	}))
}
