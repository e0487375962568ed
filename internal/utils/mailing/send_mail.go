package mailing

import (
	"Lost-Found-Registry/domain"
	"Lost-Found-Registry/internal/utils"
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/gomail.v2"
)

const DefaultTimeout = 30 * time.Second

type (
	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
		Timeout      time.Duration
	}

	// Attachment is a file on disk sent with a mail. Inline attachments are
	// embedded and can be referenced from the HTML body as cid:<ContentID(Path)>.
	Attachment struct {
		Path   string
		Inline bool
	}

	Mail struct {
		To          string
		Subject     string
		HTMLBody    string
		Attachments []Attachment
	}

	Mailer interface {
		Send(ctx context.Context, mail Mail) error
	}

	// Sender delivers messages and must give up once ctx is done.
	Sender interface {
		Send(ctx context.Context, m ...*gomail.Message) error
	}

	mailer struct {
		config MailConfig
		sender Sender
	}
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
		Timeout:      time.Duration(utils.GetConfigInt("SMTP_TIMEOUT_SECONDS", 0)) * time.Second,
	}
}

// NewMailer sends through an SMTP dialer built from config.
func NewMailer(config MailConfig) Mailer {
	return &mailer{config: config}
}

// NewMailerWithSender sends through the given transport instead of SMTP.
func NewMailerWithSender(config MailConfig, sender Sender) Mailer {
	return &mailer{config: config, sender: sender}
}

// ContentID is the Content-ID gomail assigns to an embedded file.
func ContentID(path string) string {
	return filepath.Base(path)
}

func (m *mailer) Send(ctx context.Context, mail Mail) error {
	if strings.TrimSpace(mail.To) == "" || strings.TrimSpace(mail.Subject) == "" || strings.TrimSpace(mail.HTMLBody) == "" {
		return domain.ErrMissingField
	}
	if m.config.SMTPEmail == "" {
		return domain.ErrMailConfiguration
	}

	sender, err := m.transport()
	if err != nil {
		return err
	}

	message := gomail.NewMessage()
	if m.config.SMTPSender != "" {
		message.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	} else {
		message.SetHeader("From", m.config.SMTPEmail)
	}
	message.SetHeader("To", mail.To)
	message.SetHeader("Subject", mail.Subject)
	message.SetBody("text/html", mail.HTMLBody)
	for _, a := range mail.Attachments {
		if a.Inline {
			message.Embed(a.Path)
		} else {
			message.Attach(a.Path)
		}
	}

	timeout := m.config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := sender.Send(ctx, message); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Errorw("email delivery timed out", "to", mail.To, "subject", mail.Subject, "error", err)
			return fmt.Errorf("%w: %v: %v", domain.ErrDeliveryFailure, ctxErr, err)
		}
		log.Errorw("email delivery failed", "to", mail.To, "subject", mail.Subject, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailure, err)
	}

	log.Infow("email sent", "to", mail.To, "subject", mail.Subject, "attachments", len(mail.Attachments))
	return nil
}

func (m *mailer) transport() (Sender, error) {
	if m.sender != nil {
		return m.sender, nil
	}

	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid SMTP port %q", domain.ErrMailConfiguration, m.config.SMTPPort)
	}

	return &smtpTransport{
		host:     m.config.SMTPHost,
		port:     port,
		username: m.config.SMTPEmail,
		password: m.config.SMTPPassword,
	}, nil
}
