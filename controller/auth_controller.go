// controller/auth_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
	"github.com/nmhung1294/INT3505E-02-demo/model"
	"github.com/nmhung1294/INT3505E-02-demo/service"
	"github.com/nmhung1294/INT3505E-02-demo/util"
	"go.uber.org/zap"
)

// CookieConfig describes the session cookie the auth endpoints manage.
type CookieConfig struct {
	Name   string
	MaxAge int
	Secure bool
}

type AuthController struct {
	userService service.IUserService
	cookie      CookieConfig
}

func NewAuthController(userService service.IUserService, cookie CookieConfig) *AuthController {
	return &AuthController{userService: userService, cookie: cookie}
}

type registerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

type loginRequest struct {
	Email string `json:"email" binding:"required"`
}

// Register handles POST /api/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid registration payload", err)
		return
	}

	user, err := ctrl.userService.RegisterUser(c.Request.Context(), model.User{Name: req.Name, Email: req.Email})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid login payload", err)
		return
	}

	user, token, err := ctrl.userService.Login(c.Request.Context(), req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ctrl.setSessionCookie(c, token)
	logger.Info("User logged in", zap.Uint("userID", user.ID))
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// Logout handles POST /api/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	c.SetCookie(ctrl.cookie.Name, "", -1, "/", "", ctrl.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me handles GET /api/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	user := util.CurrentUser(c)
	if user == nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GoogleLogin handles GET /api/auth/google and redirects the client to
// the Google consent screen.
func (ctrl *AuthController) GoogleLogin(c *gin.Context) {
	url, err := ctrl.userService.GoogleAuthURL()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

// GoogleCallback handles GET /api/auth/google/callback
func (ctrl *AuthController) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		util.RespondWithError(c, http.StatusBadRequest, "Missing authorization code", nil)
		return
	}

	user, token, err := ctrl.userService.LoginWithGoogle(c.Request.Context(), code)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ctrl.setSessionCookie(c, token)
	logger.Info("User logged in via Google", zap.Uint("userID", user.ID))
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

func (ctrl *AuthController) RegisterRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	auth.POST("/register", ctrl.Register)
	auth.POST("/login", ctrl.Login)
	auth.POST("/logout", ctrl.Logout)
	auth.GET("/me", ctrl.Me)
	auth.GET("/google", ctrl.GoogleLogin)
	auth.GET("/google/callback", ctrl.GoogleCallback)
}

func (ctrl *AuthController) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(ctrl.cookie.Name, token, ctrl.cookie.MaxAge, "/", "", ctrl.cookie.Secure, true)
}
