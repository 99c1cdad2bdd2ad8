package accounts

import (
	"context"
	"fmt"
	"log"
	"net/smtp"

	"github.com/WildTrails/WT-Backend/internal/config"
)

// Message is the narrow contract with the mail collaborator.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers a message. A failed delivery must propagate so the caller
// can roll back whatever the mail was meant to confirm.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

type smtpMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPMailer(cfg *config.Config) Mailer {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}
	return &smtpMailer{
		addr: cfg.SMTPHost + ":" + cfg.SMTPPort,
		auth: auth,
		from: cfg.MailFrom,
	}
}

func (m *smtpMailer) Send(_ context.Context, msg Message) error {
	payload := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, msg.To, msg.Subject, msg.Body)
	return smtp.SendMail(m.addr, m.auth, m.from, []string{msg.To}, []byte(payload))
}

// logMailer stands in when no SMTP host is configured (local development).
type logMailer struct{}

func (logMailer) Send(_ context.Context, msg Message) error {
	log.Printf("[mail] to=%s subject=%q\n%s", msg.To, msg.Subject, msg.Body)
	return nil
}
