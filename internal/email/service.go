// Package email sends transactional mail over plain SMTP.
package email

import (
	"fmt"
	"net/smtp"

	"github.com/example/bala-store/internal/domain"
)

// Service handles email sending via SMTP.
type Service struct {
	host string
	port string
	from string
}

func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
	}
}

// SendOrderConfirmation mails the customer a summary of a freshly placed
// order.
func (s *Service) SendOrderConfirmation(to string, order domain.Order) error {
	subject := fmt.Sprintf("Order received: %s", order.ID)
	body := BuildOrderConfirmationBody(order)
	return s.send(to, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}
