package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/music-studio/music-studio-api/services"
)

// ContactController exposes the public contact form and the admin inbox
type ContactController struct {
	contacts *services.ContactService
	logger   zerolog.Logger
}

func NewContactController(contacts *services.ContactService, logger zerolog.Logger) *ContactController {
	return &ContactController{contacts: contacts, logger: logger}
}

// Submit handles POST /api/contact.
// A failed notification email still answers 201; the message is already stored.
func (cc *ContactController) Submit(c *gin.Context) {
	var req services.ContactInput
	if !bindJSON(c, &req) {
		return
	}

	contact, _, err := cc.contacts.Submit(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, cc.logger, err, "")
		return
	}

	respondWithMessage(c, http.StatusCreated, "Message sent successfully!", contact)
}

// List handles GET /api/admin/contacts
func (cc *ContactController) List(c *gin.Context) {
	contacts, err := cc.contacts.List()
	if err != nil {
		handleServiceError(c, cc.logger, err, "")
		return
	}
	respond(c, http.StatusOK, contacts)
}

// Delete handles DELETE /api/admin/contacts/:id
func (cc *ContactController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := cc.contacts.Delete(id); err != nil {
		handleServiceError(c, cc.logger, err, "Contact not found")
		return
	}
	respondWithMessage(c, http.StatusOK, "Contact deleted successfully", nil)
}
