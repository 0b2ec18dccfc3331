package humains

import (
	"sync"
	"time"
)

// session holds the bearer token shared by all inject calls.
type session struct {
	mu     sync.RWMutex
	token  string
	issued time.Time
}

func (s *session) current() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *session) store(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.issued = time.Now()
}

func (s *session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.issued = time.Time{}
}

func (s *session) issuedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.issued
}
