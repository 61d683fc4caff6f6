package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
)

// ProfileHandler serves the profile page, profile and password updates, and
// account deletion.
type ProfileHandler struct {
	users services.UserServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(users services.UserServicer) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// ProfileForm updates the account's username and email.
type ProfileForm struct {
	Username string `form:"username" binding:"required,min=3,max=50"`
	Email    string `form:"email" binding:"required,email,max=255"`
}

// PasswordForm changes the account password.
type PasswordForm struct {
	CurrentPassword string `form:"current_password" binding:"required"`
	NewPassword     string `form:"new_password" binding:"required,min=8,max=128"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=NewPassword"`
}

// DeleteAccountForm confirms account deletion.
type DeleteAccountForm struct {
	Confirmation string `form:"confirmation"`
}

// Show renders the profile page.
func (h *ProfileHandler) Show(c *gin.Context) {
	userID := middleware.UserID(c)

	user, err := h.users.GetUserByID(userID)
	if err != nil {
		c.Error(apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	render(c, http.StatusOK, "profile.html", gin.H{
		"Title": "Profile",
		"User":  user,
	})
}

// Update dispatches the profile page's two forms on the submitted action.
func (h *ProfileHandler) Update(c *gin.Context) {
	if _, ok := c.GetPostForm("update_password"); ok {
		h.changePassword(c)
		return
	}
	h.updateProfile(c)
}

func (h *ProfileHandler) updateProfile(c *gin.Context) {
	userID := middleware.UserID(c)

	var form ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.AddFlash(c, "danger", "Please check the profile details and try again.")
		redirect(c, "/profile")
		return
	}

	if _, err := h.users.UpdateProfile(userID, form.Username, form.Email); err != nil {
		flashError(c, err)
		redirect(c, "/profile")
		return
	}

	middleware.AddFlash(c, "success", "Profile updated successfully!")
	redirect(c, "/profile")
}

func (h *ProfileHandler) changePassword(c *gin.Context) {
	userID := middleware.UserID(c)

	var form PasswordForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.AddFlash(c, "danger", "Please check the password details and try again.")
		redirect(c, "/profile")
		return
	}

	if err := h.users.ChangePassword(userID, form.CurrentPassword, form.NewPassword); err != nil {
		flashError(c, err)
		redirect(c, "/profile")
		return
	}

	middleware.AddFlash(c, "success", "Password updated successfully!")
	redirect(c, "/profile")
}

// DeleteAccount permanently removes the account and everything it owns.
// The confirmation text must be exactly "DELETE".
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID := middleware.UserID(c)

	var form DeleteAccountForm
	_ = c.ShouldBind(&form)
	if form.Confirmation != "DELETE" {
		middleware.AddFlash(c, "warning", "Account deletion canceled. Confirmation text did not match.")
		redirect(c, "/profile")
		return
	}

	if err := h.users.DeleteAccount(userID); err != nil {
		flashError(c, err)
		redirect(c, "/profile")
		return
	}

	if err := middleware.ClearSession(c); err != nil {
		flashError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
	}
	middleware.AddFlash(c, "info", "Your account has been permanently deleted.")
	redirect(c, "/")
}
