package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/smilecare/clinic-api/config"
	"github.com/smilecare/clinic-api/pkg/circuitbreaker"
	"github.com/smilecare/clinic-api/pkg/logger"
)

type Service interface {
	SendAppointmentReminder(ctx context.Context, to, name string, scheduledFor time.Time) error
	SendWelcome(ctx context.Context, to, name string) error
	SendCustom(ctx context.Context, to, subject, content string) error
}

type smtpService struct {
	dialer  *gomail.Dialer
	from    string
	breaker *circuitbreaker.CircuitBreaker
	logger  *logger.Logger
}

func NewSMTPService(cfg config.EmailConfig, logger *logger.Logger) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.From,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "smtp",
			MaxRequests: 5,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
		}),
		logger: logger,
	}
}

func (s *smtpService) SendAppointmentReminder(ctx context.Context, to, name string, scheduledFor time.Time) error {
	subject := "Appointment reminder"
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>This is a reminder of your appointment on %s.</p><p>Please arrive ten minutes early.</p>",
		name, scheduledFor.Format("Monday, 2 January 2006 at 15:04"),
	)
	return s.send(ctx, to, subject, body)
}

func (s *smtpService) SendWelcome(ctx context.Context, to, name string) error {
	subject := "Welcome to the clinic"
	body := fmt.Sprintf("<p>Hello %s,</p><p>Your patient record has been created. We look forward to seeing you.</p>", name)
	return s.send(ctx, to, subject, body)
}

func (s *smtpService) SendCustom(ctx context.Context, to, subject, content string) error {
	return s.send(ctx, to, subject, content)
}

func (s *smtpService) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	err := s.breaker.Execute(func() error {
		return s.dialer.DialAndSend(m)
	})
	if err != nil {
		s.logger.Error(err, "failed to send email", map[string]interface{}{"to": to, "subject": subject})
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
