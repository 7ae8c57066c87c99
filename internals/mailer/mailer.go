package mailer

import "log"

// Message is a plain transactional email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// EmailService delivers transactional mail. Delivery failures are the
// caller's problem to log; no workflow depends on mail succeeding.
type EmailService interface {
	Send(msg Message) error
}

// ConsoleService writes mail to the log. Used in development and tests.
type ConsoleService struct{}

func NewConsoleService() *ConsoleService { return &ConsoleService{} }

func (s *ConsoleService) Send(msg Message) error {
	log.Printf("[MAIL] to=%s subject=%q\n%s", msg.To, msg.Subject, msg.Body)
	return nil
}
