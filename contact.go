package main

import (
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SohamRatnaparkhi/developer-minimal-portfolio/internal/config"
	"github.com/SohamRatnaparkhi/developer-minimal-portfolio/internal/store"
)

type mailer interface {
	Send(m *store.ContactMessage) error
}

type smtpMailer struct {
	cfg      config.SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func newSMTPMailer(cfg config.SMTPConfig) *smtpMailer {
	if cfg.To == "" {
		cfg.To = cfg.User
	}
	return &smtpMailer{cfg: cfg, sendMail: smtp.SendMail}
}

func (m *smtpMailer) Send(msg *store.ContactMessage) error {
	if !m.cfg.Enabled() {
		return fmt.Errorf("SMTP credentials not configured")
	}
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := m.sendMail(addr, auth, m.cfg.User, []string{m.cfg.To}, composeEmail(m.cfg.User, m.cfg.To, msg)); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	log.Printf("Email sent successfully from %s (%s)", msg.Name, msg.Email)
	return nil
}

// headerSafe strips line breaks so user input cannot add headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

func composeEmail(from, to string, msg *store.ContactMessage) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(msg.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Message)

	return []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + headerSafe(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

func validateContact(name, email, message string) error {
	if name == "" || message == "" {
		return fmt.Errorf("name and message are required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email address %q", email)
	}
	return nil
}

func (s *server) handleContact(c *gin.Context) {
	msg := &store.ContactMessage{
		Name:    strings.TrimSpace(c.PostForm("fullName")),
		Email:   strings.TrimSpace(c.PostForm("email")),
		Message: strings.TrimSpace(c.PostForm("message")),
	}
	if err := validateContact(msg.Name, msg.Email, msg.Message); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in every field with a valid email address.",
		})
		return
	}

	if err := s.db.SaveMessage(c.Request.Context(), msg); err != nil {
		log.Printf("Error saving contact message: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	if s.mailer != nil {
		if err := s.mailer.Send(msg); err != nil {
			// The message is stored; the admin dashboard shows it as undelivered.
			log.Printf("Error sending email: %v", err)
		} else if err := s.db.MarkDelivered(c.Request.Context(), msg.ID); err != nil {
			log.Printf("Error marking message %s delivered: %v", msg.ID, err)
		}
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
