package handlers

import (
	"net/http"

	"calcapi/internal/service"

	"github.com/gin-gonic/gin"
)

// signUpRequest carries the registration payload. Shape checks happen in
// binding tags; normalization and the password policy live in the service.
type signUpRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
}

// signInRequest accepts a username or email in identifier.
type signInRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      signUpRequest  true  "account details"
// @Success      201    {object}  models.User
// @Failure      400    {object}  map[string]string
// @Failure      409    {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input signUpRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.SignUp(c.Request.Context(), service.RegisterInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
	})
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_sign_up_failed", "username", input.Username, "err", err)
		}
		h.respondServiceError(c, err, "auth_sign_up_error")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// @Summary      Sign in with username or email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      signInRequest  true  "credentials"
// @Success      200    {object}  map[string]string  "token"
// @Failure      401    {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input signInRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Identifier, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_sign_in_failed", "identifier", input.Identifier, "err", err)
		}
		h.respondServiceError(c, err, "auth_sign_in_error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/users/me [get]
// @Security     BearerAuth
func (h *Handler) getMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errMsgUnauthorized})
		return
	}

	user, err := h.services.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.respondServiceError(c, err, "users_me_failed", "userId", userID)
		return
	}

	c.JSON(http.StatusOK, user)
}
