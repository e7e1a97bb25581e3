package store

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"flashysurf/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EventFileStore appends events, one JSON object per line, to a file.
type EventFileStore struct {
	path string
	mu   sync.Mutex
}

var _ domain.EventStore = (*EventFileStore)(nil)

func NewEventFileStore(path string) *EventFileStore {
	return &EventFileStore{path: path}
}

// Path returns the log file location.
func (s *EventFileStore) Path() string { return s.path }

func (s *EventFileStore) TrackEvent(ctx context.Context, ev domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	line, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ListEvents returns every stored event in the order it was tracked. A
// missing log yields no events.
func (s *EventFileStore) ListEvents(ctx context.Context) ([]domain.Event, error) {
	s.mu.Lock()
	b, err := readFile(s.path)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var out []domain.Event
	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for n := 1; sc.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var ev domain.Event
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", s.path, n, err)
		}
		out = append(out, ev)
	}
	return out, sc.Err()
}
