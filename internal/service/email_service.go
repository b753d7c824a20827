package service

import (
	"crypto/tls"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/mail.v2"

	"github.com/mikhailsoldatkin/yatube-social/config"
	"github.com/mikhailsoldatkin/yatube-social/internal/util"
)

// EmailService sends transactional mail over SMTP. Sends are asynchronous;
// a delivery failure is logged, never surfaced to the request.
type EmailService struct {
	smtpHost string
	smtpPort int
	username string
	password string
}

func NewEmailService() *EmailService {
	return &EmailService{
		smtpHost: config.AppConfig.SMTPHost,
		smtpPort: config.AppConfig.SMTPPort,
		username: config.AppConfig.SMTPUsername,
		password: config.AppConfig.SMTPPassword,
	}
}

func (s *EmailService) SendWelcomeEmail(email, username string) {
	subject := "Welcome to Yatube"
	body := fmt.Sprintf("Hi %s,\n\nYour account is ready. Happy posting!", username)
	s.sendEmailAsync(email, subject, body)
}

// SendPasswordResetEmail issues a one-hour reset token and mails the link.
func (s *EmailService) SendPasswordResetEmail(email, username string) error {
	token, err := util.GeneratePasswordResetToken(email)
	if err != nil {
		util.Logger.Error("failed to generate reset token", zap.Error(err))
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/auth/password-reset/confirm/?token=%s", config.AppConfig.FrontendURL, token)

	subject := "Reset your Yatube password"
	body := fmt.Sprintf("Hi %s,\n\nFollow this link to set a new password:\n%s\n\nThe link expires in one hour.",
		username, resetLink)

	s.sendEmailAsync(email, subject, body)
	return nil
}

func (s *EmailService) sendEmailAsync(to, subject, body string) {
	go func() {
		if err := s.sendEmail(to, subject, body); err != nil {
			util.Logger.Error("async email delivery failed", zap.Error(err), zap.String("to", to))
		}
	}()
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.username)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := mail.NewDialer(s.smtpHost, s.smtpPort, s.username, s.password)
	d.TLSConfig = &tls.Config{ServerName: s.smtpHost}

	return d.DialAndSend(m)
}
