package service

import "time"

// Backdate moves a session's last activity into the past.
func Backdate(s *Session, d time.Duration) {
	s.mu.Lock()
	s.updatedAt = s.updatedAt.Add(-d)
	s.mu.Unlock()
}
