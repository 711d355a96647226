package contact

import "context"

// Message is one contact-form submission forwarded to the remote service.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Service forwards contact messages to the backend.
type Service interface {
	Send(ctx context.Context, msg Message) error
}

// StaticService accepts every message, for local development and tests.
type StaticService struct {
	Sent []Message
}

// NewStaticService constructs an empty StaticService.
func NewStaticService() *StaticService {
	return &StaticService{}
}

// Send records the message.
func (s *StaticService) Send(ctx context.Context, msg Message) error {
	s.Sent = append(s.Sent, msg)
	return nil
}
