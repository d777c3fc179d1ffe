package handlers

import (
	"net/http"

	portssvc "github.com/coursebay/lms_backend/internal/core/ports/services"
	"github.com/coursebay/lms_backend/internal/dto"
	"github.com/coursebay/lms_backend/internal/middleware"
	"github.com/coursebay/lms_backend/internal/platform/config"
	"github.com/coursebay/lms_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	userService portssvc.UserSvcFacade
	cfg         *config.Config
}

func NewAuthHandler(us portssvc.UserSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{userService: us, cfg: cfg}
}

// registerAuthRoutes sets up the public authentication routes. Login is
// rate-limited per client IP.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, userService portssvc.UserSvcFacade) {
	h := NewAuthHandler(userService, cfg)

	auth := r.Group("/api/auth")
	auth.POST("/register", h.Register)

	ipLimiter, err := middleware.NewIPRateLimiter(cfg.LoginRateSpec)
	if err != nil {
		// A broken rate spec should not take logins down with it.
		auth.POST("/login", h.Login)
		return
	}
	auth.POST("/login", middleware.RateLimit(ipLimiter), h.Login)
}

// Register godoc
// @Summary Register a new user
// @Description Creates a learner or instructor account.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "registration successful", gin.H{"user": dto.ToUserResponse(user)})
}

// Login godoc
// @Summary Authenticate a user
// @Description Verifies credentials and issues a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateJWT(user.UserID, string(user.Role), h.cfg.JWTSecret, h.cfg.JWTExpiry, h.cfg.JWTIssuer)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "login successful", gin.H{
		"token": token,
		"user":  dto.ToUserResponse(user),
	})
}
