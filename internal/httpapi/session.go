package httpapi

import (
	"sync"

	"servicemap/internal/models"
)

// Session is the server-side state of the controls around the map: the
// active filter button and the last alert shown. It implements controller.UI.
// Responses carry the alerts their own call produced, so Session only keeps
// the latest one for GET requests that want to redisplay it.
type Session struct {
	mu     sync.Mutex
	active string
	alert  string
}

func NewSession() *Session {
	return &Session{active: models.FilterAll}
}

func (s *Session) ActiveFilter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Session) SetActiveFilter(filter string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = filter
}

func (s *Session) Alert(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alert = message
}

// LastAlert returns the most recent alert, or "" if none was raised.
func (s *Session) LastAlert() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alert
}
