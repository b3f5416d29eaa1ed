// Package contact handles contact form submissions.
//
// By default nothing leaves the server: SimulatedSender waits a fixed delay
// and reports success, which is what the page expects. SMTPSender delivers
// real mail when credentials are configured.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Zachkp/neon-portfolio/internal/storage"
)

var (
	// ErrInvalidForm wraps field validation failures.
	ErrInvalidForm = errors.New("invalid contact form")
	// ErrSpam marks a submission that filled the honeypot field. Callers
	// should answer as if it succeeded.
	ErrSpam = errors.New("contact form honeypot triggered")
)

// Form is the submitted contact form.
type Form struct {
	Name    string `form:"fullName" json:"name"    binding:"required,max=100"`
	Email   string `form:"email"    json:"email"   binding:"required,email,max=254"`
	Message string `form:"message"  json:"message" binding:"required,min=10,max=5000"`
	// Website is hidden from humans; bots fill it in.
	Website string `form:"website" json:"website"`
}

// Message is an accepted submission.
type Message struct {
	ID         string
	Name       string
	Email      string
	Body       string
	ReceivedAt time.Time
}

// Sender delivers an accepted message.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// Recorder persists messages. *storage.Store satisfies it.
type Recorder interface {
	SaveMessage(ctx context.Context, m storage.Message) error
	MarkDelivered(ctx context.Context, id string) error
}

// Service validates, records, and sends submissions.
type Service struct {
	sender   Sender
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewService wires a sender and an optional recorder (nil to skip storage).
func NewService(sender Sender, recorder Recorder, logger *zap.Logger) *Service {
	return &Service{
		sender:   sender,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Validate runs the form's binding rules.
func Validate(f Form) error {
	if err := binding.Validator.ValidateStruct(f); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	return nil
}

// Submit accepts a form. It returns ErrInvalidForm for bad input, ErrSpam
// for honeypot hits, and the context error if ctx ends before delivery.
func (s *Service) Submit(ctx context.Context, f Form) (Message, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Message = strings.TrimSpace(f.Message)

	if f.Website != "" {
		s.logger.Info("contact honeypot triggered")
		return Message{}, ErrSpam
	}
	if err := Validate(f); err != nil {
		return Message{}, err
	}

	m := Message{
		ID:         s.newID(),
		Name:       f.Name,
		Email:      f.Email,
		Body:       f.Message,
		ReceivedAt: s.now(),
	}
	if s.recorder != nil {
		err := s.recorder.SaveMessage(ctx, storage.Message{
			ID: m.ID, Name: m.Name, Email: m.Email, Body: m.Body, ReceivedAt: m.ReceivedAt,
		})
		if err != nil {
			return Message{}, err
		}
	}
	if err := s.sender.Send(ctx, m); err != nil {
		s.logger.Error("contact delivery failed", zap.String("id", m.ID), zap.Error(err))
		return Message{}, fmt.Errorf("send message: %w", err)
	}
	if s.recorder != nil {
		if err := s.recorder.MarkDelivered(ctx, m.ID); err != nil {
			s.logger.Warn("mark delivered", zap.String("id", m.ID), zap.Error(err))
		}
	}
	s.logger.Info("contact message accepted", zap.String("id", m.ID))
	return m, nil
}

// FieldErrors turns a validation error into per-field messages keyed by the
// form field name. Errors that are not validation errors yield nil.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := formField(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required."
		case "email":
			out[field] = "Please enter a valid email address."
		case "min":
			out[field] = fmt.Sprintf("Please write at least %s characters.", fe.Param())
		case "max":
			out[field] = fmt.Sprintf("Please keep this under %s characters.", fe.Param())
		default:
			out[field] = "This value is not valid."
		}
	}
	return out
}

func formField(structField string) string {
	switch structField {
	case "Name":
		return "fullName"
	case "Email":
		return "email"
	case "Message":
		return "message"
	default:
		return strings.ToLower(structField)
	}
}
