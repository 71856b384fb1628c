package notify

import (
	"fmt"
	"net/smtp"
)

type SMTPSender struct {
	From     string
	FromName string
	Host     string
	Port     string
	User     string
	Pass     string
}

func (s SMTPSender) Send(to, subject, body string) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.FromName, s.From)
	message += fmt.Sprintf("To: %s\r\n", to)
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += "\r\n" + body

	var auth smtp.Auth
	if s.User != "" && s.Pass != "" {
		auth = smtp.PlainAuth("", s.User, s.Pass, s.Host)
	}

	return smtp.SendMail(s.Host+":"+s.Port, auth, s.From, []string{to}, []byte(message))
}
