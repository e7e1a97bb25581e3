package feature_test

import "sync"

// syncImage is safe to read while a timer goroutine writes to it.
type syncImage struct {
	mu      sync.Mutex
	src     string
	opacity float64
}

func (s *syncImage) SetOpacity(o float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opacity = o
}

func (s *syncImage) SetSource(src string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src = src
}

func (s *syncImage) source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src
}
