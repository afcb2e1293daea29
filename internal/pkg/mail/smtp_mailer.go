package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/sabhahq/sabha/internal/pkg/env"
)

// SendMail sends an HTML email via SMTP. Configuration comes from the
// environment; failures are logged and returned, callers decide whether to
// care.
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}

// SendMembershipConfirmation notifies a member that their membership is
// active. Best effort; the activation is already committed when this runs.
func SendMembershipConfirmation(to, name, planName, validUntil string) error {
	subject := "Your membership is active"
	until := validUntil
	if until == "" {
		until = "lifetime"
	}
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>Your <strong>%s</strong> membership is now active (valid until: %s).</p><p>Thank you for being part of the society.</p>",
		name, planName, until,
	)
	return SendMail(to, subject, body)
}
