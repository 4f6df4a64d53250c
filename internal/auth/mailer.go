package auth

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/kidandcat/taskboard/internal/config"
)

// Mailer delivers magic-link emails.
type Mailer interface {
	SendMagicLink(to, link string)
}

type smtpMailer struct {
	cfg *config.Config
}

func (m smtpMailer) SendMagicLink(to, link string) {
	if m.cfg.SMTPHost == "" {
		log.Printf("SMTP not configured, magic link: %s", link)
		return
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Taskboard Login\r\n\r\nClick to log in:\n%s\n\nThis link expires in 15 minutes.",
		m.cfg.SMTPFrom, to, link)
	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	if err := smtp.SendMail(addr, auth, m.cfg.SMTPFrom, []string{to}, []byte(msg)); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
	}
}
