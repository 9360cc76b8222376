package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/mailer"
	"github.com/Zachkp/portfolio/internal/store"
)

type contactRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email,max=255"`
	Message string `json:"message" binding:"required,max=5000"`
}

// createContact records a contact message and answers 201 once it is stored.
// The mail relay runs in the background so a slow SMTP server never holds up
// the response.
func (s *server) createContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and message are required"})
		return
	}

	msg := store.Message{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Message:    req.Message,
		RemoteHash: s.hashIP(c.ClientIP()),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.SaveMessage(c.Request.Context(), msg); err != nil {
		log.Printf("Error saving contact message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record message"})
		return
	}

	if s.relay != nil {
		mail := mailer.Mail{Name: req.Name, Email: req.Email, Message: req.Message}
		s.bg.Add(1)
		go func() {
			defer s.bg.Done()
			s.relayMessage(msg.ID, mail)
		}()
	}

	c.JSON(http.StatusCreated, gin.H{"id": msg.ID})
}

func (s *server) relayMessage(id string, m mailer.Mail) {
	err := s.relay.Send(m)
	switch {
	case errors.Is(err, mailer.ErrNotConfigured):
	case err != nil:
		log.Printf("Error sending email for message %s: %v", id, err)
	default:
		log.Printf("Email sent successfully for message %s", id)
	}
}
