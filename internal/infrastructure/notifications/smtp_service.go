package notifications

import (
	"log/slog"

	gomail "gopkg.in/gomail.v2"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// SMTPServiceImpl implements domain.MailService over SMTP
type SMTPServiceImpl struct {
	dialer *gomail.Dialer
	from   string
	host   string
}

// NewSMTPService creates a new SMTP mail service
func NewSMTPService(host string, port int, username, password, from string) domain.MailService {
	return &SMTPServiceImpl{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		host:   host,
	}
}

// SendHTML implements domain.MailService. When no SMTP host is
// configured the message is logged instead of sent, which keeps local
// development working without a mail server.
func (s *SMTPServiceImpl) SendHTML(to, subject, html string) error {
	if s.host == "" {
		slog.Info("mock email", "to", to, "subject", subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	return s.dialer.DialAndSend(m)
}
