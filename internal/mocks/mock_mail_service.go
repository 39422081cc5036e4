package mocks

import (
	"sync"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

// SentMail captures a delivered message for assertions
type SentMail struct {
	To      string
	Subject string
	HTML    string
}

// MockMailService implements domain.MailService for testing. Sent
// messages are recorded so tests can assert on delivery.
type MockMailService struct {
	SendHTMLFunc func(to, subject, html string) error

	mu   sync.Mutex
	Sent []SentMail
}

// NewMockMailService creates a new MockMailService with default behaviors
func NewMockMailService() *MockMailService {
	return &MockMailService{}
}

// SendHTML records the message and applies the configured behavior
func (m *MockMailService) SendHTML(to, subject, html string) error {
	if m.SendHTMLFunc != nil {
		if err := m.SendHTMLFunc(to, subject, html); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentMail{To: to, Subject: subject, HTML: html})
	return nil
}

// LastSent returns the most recently recorded message, or nil
func (m *MockMailService) LastSent() *SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	last := m.Sent[len(m.Sent)-1]
	return &last
}

// Compile-time interface compliance verification
var _ domain.MailService = (*MockMailService)(nil)
