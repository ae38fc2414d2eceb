package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contactmapper "github.com/Apurer/plant-nursery-api/internal/domains/contact/adapters/http/mapper"
	statsmapper "github.com/Apurer/plant-nursery-api/internal/domains/stats/adapters/http/mapper"
	usermapper "github.com/Apurer/plant-nursery-api/internal/domains/users/adapters/http/mapper"
	apierrors "github.com/Apurer/plant-nursery-api/internal/shared/errors"
)

// Post /api/register
func (a *api) register(c *gin.Context) {
	var payload usermapper.Register
	if err := c.ShouldBindJSON(&payload); err != nil {
		a.responder.Respond(c, apierrors.ErrValidation.WithDetail("Missing required fields: name, email, password"))
		return
	}
	user, err := a.services.Users.Register(c.Request.Context(), usermapper.ToRegisterInput(payload))
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	a.responder.OK(c, http.StatusOK, "User registered successfully", usermapper.FromDomainUser(user))
}

// Post /api/login
func (a *api) login(c *gin.Context) {
	var payload usermapper.Credentials
	if err := c.ShouldBindJSON(&payload); err != nil {
		a.responder.Respond(c, apierrors.ErrValidation.WithDetail("Missing required fields: email, password"))
		return
	}
	result, err := a.services.Users.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	a.responder.OK(c, http.StatusOK, "Login successful", usermapper.FromLoginResult(result))
}

// Post /api/logout
func (a *api) logout(c *gin.Context) {
	if err := a.services.Users.Logout(c.Request.Context(), currentUserID(c)); err != nil {
		a.responder.RespondError(c, err)
		return
	}
	a.responder.OK(c, http.StatusOK, "Logged out successfully", nil)
}

// Get /api/admin/users
func (a *api) adminUsers(c *gin.Context) {
	users, err := a.services.Users.List(c.Request.Context())
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	a.responder.List(c, "Users retrieved successfully", usermapper.FromDomainUsers(users), len(users), nil)
}

// Get /api/admin/stats
func (a *api) stats(c *gin.Context) {
	dashboard, err := a.services.Stats.Dashboard(c.Request.Context())
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	a.responder.OK(c, http.StatusOK, "Statistics retrieved successfully", statsmapper.FromDomainDashboard(dashboard))
}

// Post /api/contact
func (a *api) submitContact(c *gin.Context) {
	var payload contactmapper.Submission
	if err := c.ShouldBindJSON(&payload); err != nil {
		a.responder.Respond(c, apierrors.ErrValidation.WithDetail("All fields (name, email, message) are required"))
		return
	}
	message, err := a.services.Contact.Submit(c.Request.Context(), contactmapper.ToSubmitInput(payload))
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	a.responder.OK(c, http.StatusOK, "Thank you for your message! We will get back to you soon.", contactmapper.FromDomainMessage(message))
}

// Get /api/admin/messages
func (a *api) messages(c *gin.Context) {
	messages, err := a.services.Contact.List(c.Request.Context())
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	a.responder.List(c, "Messages retrieved successfully", contactmapper.FromDomainMessages(messages), len(messages), nil)
}

// Patch /api/admin/messages/:id/read
func (a *api) markMessageRead(c *gin.Context) {
	message, err := a.services.Contact.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	a.responder.OK(c, http.StatusOK, "Message marked as read", contactmapper.FromDomainMessage(message))
}
