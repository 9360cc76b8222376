// Package contact holds the state of the contact form and submits it.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

// Messages shown while and after a submission.
const (
	MsgSending   = "Sending message..."
	MsgDelivered = "Message delivered!"
	MsgFailed    = "Error while sending message. Please try again later."

	ToastDuration = 3000 * time.Millisecond
)

var (
	ErrUnknownField = errors.New("unknown form field")
	ErrNotReady     = errors.New("form is not ready to submit")
)

// Fields is the payload posted to the contact endpoint.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Complete reports whether every field is non-empty. No format checks are
// done here.
func (f Fields) Complete() bool {
	return f.Name != "" && f.Email != "" && f.Message != ""
}

// Sender delivers the form and returns the HTTP status it got back.
type Sender interface {
	Send(ctx context.Context, f Fields) (int, error)
}

// Notifier shows transient status messages. Success and Error replace the
// loading toast that has the same id.
type Notifier interface {
	Loading(msg string) string
	Success(id, msg string, d time.Duration)
	Error(id, msg string, d time.Duration)
}

type Outcome int

const (
	Delivered Outcome = iota + 1
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Delivered:
		return "delivered"
	case Failed:
		return "failed"
	}
	return "unknown"
}

type Option func(*Controller)

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller is one contact form instance. All methods are safe for
// concurrent use; at most one Send is in flight at a time.
type Controller struct {
	sender   Sender
	notifier Notifier
	logger   *log.Logger

	mu         sync.Mutex
	fields     Fields
	validated  bool
	submitting bool
}

func NewController(sender Sender, notifier Notifier, opts ...Option) *Controller {
	c := &Controller{
		sender:   sender,
		notifier: notifier,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Change sets one field by its form name and revalidates.
func (c *Controller) Change(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case "name":
		c.fields.Name = value
	case "email":
		c.fields.Email = value
	case "message":
		c.fields.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	c.validated = c.fields.Complete()
	return nil
}

func (c *Controller) Fields() Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

func (c *Controller) Validated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validated
}

func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// CanSubmit is the enabled state of the submit control.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validated && !c.submitting
}

// Submit sends the current fields once. It returns ErrNotReady, without
// touching the network, when the form is incomplete or a submission is
// already outstanding. Delivery failures are reported through the notifier
// and the Failed outcome, not as an error.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	if !c.validated || c.submitting {
		c.mu.Unlock()
		return 0, ErrNotReady
	}
	c.submitting = true
	payload := c.fields
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	id := c.notifier.Loading(MsgSending)

	status, err := c.sender.Send(ctx, payload)
	if err == nil && status != http.StatusCreated {
		err = fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}
	if err != nil {
		c.logger.Printf("Error sending message: %v", err)
		c.notifier.Error(id, MsgFailed, ToastDuration)
		return Failed, nil
	}

	c.mu.Lock()
	c.fields = Fields{}
	c.validated = false
	c.mu.Unlock()

	c.notifier.Success(id, MsgDelivered, ToastDuration)
	return Delivered, nil
}
