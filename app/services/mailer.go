package services

import (
	"fmt"
	"log"
	"net/smtp"
)

type MailerConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type Mailer struct {
	config MailerConfig
}

func NewMailer(cfg MailerConfig) *Mailer {
	return &Mailer{config: cfg}
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {
	headers := map[string]string{
		"From":         m.config.From,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"UTF-8\"",
	}

	var msg string
	for k, v := range headers {
		msg += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	msg += "\r\n" + htmlBody

	auth := smtp.PlainAuth(m.config.From, m.config.Username, m.config.Password, m.config.Host)
	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg)); err != nil {
		log.Printf("Mailer.SendHTMLEmail: failed to send to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOrderConfirmation is best-effort; a mail failure never fails checkout.
func (m *Mailer) SendOrderConfirmation(to, orderCode, grandTotal string) {
	body := fmt.Sprintf(
		"<h2>Thank you for your order!</h2><p>Your order reference is <strong>%s</strong>.</p><p>Total: %s</p>",
		orderCode, grandTotal,
	)
	if err := m.SendHTMLEmail(to, "Order confirmation "+orderCode, body); err != nil {
		log.Printf("Mailer.SendOrderConfirmation: order %s: %v", orderCode, err)
	}
}
