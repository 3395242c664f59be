package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/JimJafar/pension-tracker/internal/errors"
	"github.com/JimJafar/pension-tracker/internal/middleware"
	"github.com/JimJafar/pension-tracker/internal/models"
	"github.com/JimJafar/pension-tracker/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService  services.UserServicer
	sessions     *middleware.Sessions
	auditService services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, sessions *middleware.Sessions, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{userService: userService, sessions: sessions, auditService: auditService}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=128"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginResponse is returned after a successful login. The token is also set
// as an HTTP-only session cookie.
type LoginResponse struct {
	Success   bool         `json:"success"`
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// SessionResponse reports whether the request carries a valid session.
type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{ID: user.ID, Username: user.Username}
}

// Login handles user login
// @Summary     Log in
// @Description Authenticate with username and password and start a session
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} LoginResponse "Session started"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     423 {object} ErrorResponse "Account locked"
// @Failure     429 {object} ErrorResponse "Too many attempts"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Username and password are required"))
		return
	}

	user, err := h.userService.AttemptLogin(req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, expiresAt, err := h.sessions.Issue(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	h.sessions.SetCookie(c, token, expiresAt)

	h.auditService.Log(user.ID, services.AuditLogin, "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, LoginResponse{
		Success:   true,
		User:      toUserResponse(user),
		Token:     token,
		ExpiresAt: expiresAt.UTC(),
	})
}

// Logout handles user logout
// @Summary     Log out
// @Description End the current session
// @Tags        auth
// @Produce     json
// @Success     200 {object} SuccessResponse "Session ended"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.ClearCookie(c)
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Session reports the current session
// @Summary     Current session
// @Description Report whether the caller is logged in, and as whom
// @Tags        auth
// @Produce     json
// @Success     200 {object} SessionResponse "Session state"
// @Router      /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusOK, SessionResponse{Authenticated: false})
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		// A valid token for a deleted user is treated as logged out.
		c.JSON(http.StatusOK, SessionResponse{Authenticated: false})
		return
	}

	resp := toUserResponse(user)
	c.JSON(http.StatusOK, SessionResponse{Authenticated: true, User: &resp})
}
