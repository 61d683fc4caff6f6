package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
)

// AuthHandler serves the landing, login, registration, and logout pages.
type AuthHandler struct {
	users services.UserServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServicer) *AuthHandler {
	return &AuthHandler{users: users}
}

// LoginForm is the login page form.
type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// RegisterForm is the registration page form.
type RegisterForm struct {
	Username        string `form:"username" binding:"required,min=3,max=50"`
	Email           string `form:"email" binding:"required,email,max=255"`
	Password        string `form:"password" binding:"required,min=8,max=128"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
}

// Index renders the landing page, or the dashboard for logged-in users.
func (h *AuthHandler) Index(c *gin.Context) {
	if _, ok := middleware.CurrentUserID(c); ok {
		redirect(c, "/dashboard")
		return
	}
	render(c, http.StatusOK, "index.html", gin.H{"Title": "Welcome"})
}

// ShowLogin renders the login page.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"Title": "Login"})
}

// Login authenticates the user and establishes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.AddFlash(c, "danger", "Invalid email or password")
		render(c, http.StatusBadRequest, "login.html", gin.H{"Title": "Login", "Email": form.Email})
		return
	}

	user, err := h.users.AttemptLogin(form.Email, form.Password)
	if err != nil {
		middleware.AddFlash(c, "danger", apperrors.ErrInvalidCredentials.Message)
		render(c, http.StatusUnauthorized, "login.html", gin.H{"Title": "Login", "Email": form.Email})
		return
	}

	if err := middleware.SetCurrentUser(c, user.ID); err != nil {
		flashError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		redirect(c, "/login")
		return
	}
	redirect(c, "/dashboard")
}

// ShowRegister renders the registration page.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"Title": "Register"})
}

// Register creates a new account and sends the user to the login page.
func (h *AuthHandler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.AddFlash(c, "danger", "Please check the registration details and try again.")
		render(c, http.StatusBadRequest, "register.html", gin.H{
			"Title":    "Register",
			"Username": form.Username,
			"Email":    form.Email,
		})
		return
	}

	if _, err := h.users.Register(form.Username, form.Email, form.Password); err != nil {
		flashError(c, err)
		render(c, http.StatusBadRequest, "register.html", gin.H{
			"Title":    "Register",
			"Username": form.Username,
			"Email":    form.Email,
		})
		return
	}

	middleware.AddFlash(c, "success", "Registration successful! You can now log in.")
	redirect(c, "/login")
}

// Logout clears the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.ClearSession(c); err != nil {
		flashError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
	}
	middleware.AddFlash(c, "info", "You have been logged out.")
	redirect(c, "/")
}
