package email

import (
	"bytes"
	"fmt"
	"go-interview-backend/config"
	"html/template"
	"net/smtp"
)

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// NewEmailService creates a new email service from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

// IsConfigured reports whether SMTP credentials are present. When they are
// not, password reset is unavailable but everything else works.
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

// resetEmailData holds the data for password reset emails
type resetEmailData struct {
	Name string
	Code string
}

const resetEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Password Reset</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .code { font-size: 28px; letter-spacing: 6px; font-weight: bold; text-align: center;
                background: white; padding: 15px; border-left: 4px solid #0066cc; margin: 15px 0; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>Password Reset Requested</h2></div>
        <div class="content">
            <p>Hi {{.Name}},</p>
            <p>Use the code below to reset your password. It expires in 15 minutes.</p>
            <div class="code">{{.Code}}</div>
            <p>If you did not request this, you can safely ignore this email.</p>
        </div>
        <div class="footer">This is an automated message, please do not reply.</div>
    </div>
</body>
</html>`

// SendPasswordResetCode emails the 6-digit reset code to the user.
func (s *EmailService) SendPasswordResetCode(toEmail, name, code string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email service not configured")
	}

	tmpl, err := template.New("reset").Parse(resetEmailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, resetEmailData{Name: name, Code: code}); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	msg := bytes.Buffer{}
	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.fromEmail))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", toEmail))
	msg.WriteString("Subject: Your password reset code\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	addr := s.host + ":" + s.port
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	return smtp.SendMail(addr, auth, s.fromEmail, []string{toEmail}, msg.Bytes())
}
