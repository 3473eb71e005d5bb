package server

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/mailer"
	"github.com/Zachkp/portfolio/internal/storage"
)

const maxMessageLen = 5000

func validateContact(name, email, message string) string {
	switch {
	case name == "" || email == "" || message == "":
		return "Please fill in your name, email and message."
	case utf8.RuneCountInString(name) > 200:
		return "Please use a shorter name."
	case utf8.RuneCountInString(message) > maxMessageLen:
		return "Your message is too long."
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "Please enter a valid email address."
	}
	return ""
}

// Handle contact form submission with HTMX
func (d *Deps) handleContact(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("fullName"))
	email := strings.TrimSpace(c.PostForm("email"))
	message := strings.TrimSpace(c.PostForm("message"))

	if msg := validateContact(name, email, message); msg != "" {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": msg})
		return
	}

	ctx := c.Request.Context()
	id, err := d.Store.SaveMessage(ctx, storage.Message{
		Name:    name,
		Email:   email,
		Body:    message,
		Created: d.Now(),
	})
	if err != nil {
		d.Log.Error("saving contact message", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	err = d.Mailer.Send(ctx, mailer.Contact{Name: name, Email: email, Message: message})
	switch {
	case errors.Is(err, mailer.ErrNotConfigured):
		d.Log.Warn("contact message stored without email notification", zap.Int64("message", id))
	case err != nil:
		d.Log.Error("notifying contact message", zap.Int64("message", id), zap.Error(err))
	default:
		if err := d.Store.MarkNotified(ctx, id); err != nil {
			d.Log.Error("marking message notified", zap.Int64("message", id), zap.Error(err))
		}
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
