package notifier

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
}

// MailSender delivers alerts over SMTP.
type MailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailSender(cfg SMTPConfig) *MailSender {
	return &MailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:   cfg.User,
	}
}

// Subject and body carry hospital and medicine names typed by staff, so the
// HTML part is rendered through html/template.
var alertTemplate = template.Must(template.New("alert").Parse(`
	<!DOCTYPE html>
	<html>
	<head>
		<title>{{.Subject}}</title>
		<style>
			body {
				font-family: Arial, sans-serif;
				background-color: #f4f4f4;
			}
			.container {
				background-color: #ffffff;
				margin: 20px auto;
				padding: 20px;
				border-radius: 8px;
				max-width: 600px;
			}
			.alert {
				font-weight: bold;
				color: #c0392b;
			}
		</style>
	</head>
	<body>
		<div class="container">
			<h1>{{.Subject}}</h1>
			<p class="alert">{{.Body}}</p>
		</div>
	</body>
	</html>
	`))

func renderHTML(alert Alert) (string, error) {
	var buf bytes.Buffer
	if err := alertTemplate.Execute(&buf, alert); err != nil {
		return "", fmt.Errorf("failed to render alert mail: %w", err)
	}
	return buf.String(), nil
}

func (s *MailSender) Send(alert Alert) error {
	htmlBody, err := renderHTML(alert)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", alert.To)
	m.SetHeader("Subject", alert.Subject)
	m.SetBody("text/plain", alert.Body)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send alert mail to %s: %w", alert.To, err)
	}
	return nil
}
