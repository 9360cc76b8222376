package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/counter"
	"github.com/Zachkp/portfolio/internal/toast"
)

func (s *server) aboutPage(c *gin.Context) {
	view, board := s.boards.Create()
	c.HTML(http.StatusOK, "about.html", gin.H{
		"title":     "About",
		"headline":  Headline,
		"biography": Biography,
		"view":      view,
		"stats":     board.Stats(),
	})
}

func (s *server) lookupBoard(c *gin.Context) (*counter.Board, bool) {
	board, ok := s.boards.Get(c.Param("view"))
	if !ok {
		c.HTML(http.StatusNotFound, "expired", gin.H{"reload": "/about"})
	}
	return board, ok
}

// revealCounter is hit once the counter scrolls into view. It swaps in the
// element that subscribes to the value stream.
func (s *server) revealCounter(c *gin.Context) {
	board, ok := s.lookupBoard(c)
	if !ok {
		return
	}
	key := c.Param("key")
	ctr, started := board.Reveal(key)
	if ctr == nil {
		c.HTML(http.StatusNotFound, "expired", gin.H{"reload": "/about"})
		return
	}
	if !started {
		log.Printf("Counter %s already revealed, not restarting", key)
	}
	c.HTML(http.StatusOK, "counter-stream", gin.H{
		"view":  c.Param("view"),
		"key":   key,
		"value": ctr.Value(),
	})
}

func (s *server) streamCounter(c *gin.Context) {
	board, ok := s.lookupBoard(c)
	if !ok {
		return
	}
	ctr, ok := board.Get(c.Param("key"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	c.Header("Cache-Control", "no-cache")
	emit := func(v int) {
		c.SSEvent("counter", strconv.Itoa(v))
		c.Writer.Flush()
	}

	if ctr.Revealed() {
		ticker := time.NewTicker(s.cfg.FrameInterval)
		defer ticker.Stop()
		if err := ctr.Run(c.Request.Context(), ticker.C, emit); err != nil {
			return
		}
	} else {
		emit(ctr.Value())
	}
	c.SSEvent("done", strconv.Itoa(ctr.Value()))
	c.Writer.Flush()
}

type formView struct {
	ID         string
	Fields     contact.Fields
	CanSubmit  bool
	Submitting bool
	Toasts     []toast.Toast
}

func newFormView(id string, f *contactForm) formView {
	return formView{
		ID:         id,
		Fields:     f.ctrl.Fields(),
		CanSubmit:  f.ctrl.CanSubmit(),
		Submitting: f.ctrl.Submitting(),
		Toasts:     f.toasts.Active(),
	}
}

func (s *server) lookupForm(c *gin.Context) (string, *contactForm, bool) {
	id := c.Param("form")
	f, ok := s.forms.Get(id)
	if !ok {
		c.HTML(http.StatusNotFound, "expired", gin.H{"reload": "/contact"})
	}
	return id, f, ok
}

func (s *server) contactPage(c *gin.Context) {
	id, f := s.forms.Create()
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"title":   "Contact Me",
		"form":    newFormView(id, f),
		"sending": contact.MsgSending,
	})
}

// changeField applies one keystroke's worth of input and returns the submit
// button so its enabled state follows validation.
func (s *server) changeField(c *gin.Context) {
	id, f, ok := s.lookupForm(c)
	if !ok {
		return
	}
	field := c.Query("field")
	if err := f.ctrl.Change(field, c.PostForm(field)); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	c.HTML(http.StatusOK, "submit-button", newFormView(id, f))
}

func (s *server) submitForm(c *gin.Context) {
	id, f, ok := s.lookupForm(c)
	if !ok {
		return
	}

	// a submission runs to completion even if the visitor leaves
	ctx := context.WithoutCancel(c.Request.Context())
	outcome, err := f.ctrl.Submit(ctx)
	if errors.Is(err, contact.ErrNotReady) {
		c.HTML(http.StatusConflict, "submit-button", newFormView(id, f))
		return
	}
	log.Printf("Contact form %s: %s", id, outcome)
	c.HTML(http.StatusOK, "contact-form", newFormView(id, f))
}

func (s *server) listToasts(c *gin.Context) {
	id, f, ok := s.lookupForm(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "toasts", newFormView(id, f))
}
