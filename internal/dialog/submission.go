package dialog

import (
	"context"
	"sync"
)

// submission is the one-shot outcome of a dialog session: either the
// submitted URL or ErrCancelled. Only the first resolve or reject counts.
type submission struct {
	once sync.Once
	done chan struct{}
	url  string
	err  error
}

func newSubmission() *submission {
	return &submission{done: make(chan struct{})}
}

func (s *submission) resolve(url string) {
	s.once.Do(func() {
		s.url = url
		close(s.done)
	})
}

func (s *submission) reject() {
	s.once.Do(func() {
		s.err = ErrCancelled
		close(s.done)
	})
}

// pending reports whether neither resolve nor reject has happened yet.
func (s *submission) pending() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// wait blocks until the submission settles or ctx ends.
func (s *submission) wait(ctx context.Context) (string, error) {
	select {
	case <-s.done:
		return s.url, s.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
