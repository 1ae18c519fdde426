package host

import "github.com/elliotchance/orderedmap/v2"

// Token identifies one subscription. The zero value is never issued.
type Token uint64

// Scheduler calls every subscribed handler once per Advance, in the order
// they were subscribed.
type Scheduler struct {
	handlers *orderedmap.OrderedMap[Token, func()]
	lastID   Token
	frame    int
	firing   bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		handlers: orderedmap.NewOrderedMap[Token, func()](),
	}
}

func (s *Scheduler) Subscribe(fn func()) Token {
	s.lastID++
	s.handlers.Set(s.lastID, fn)
	return s.lastID
}

// Unsubscribe removes the handler registered under t. It reports whether
// anything was removed.
func (s *Scheduler) Unsubscribe(t Token) bool {
	return s.handlers.Delete(t)
}

// Advance runs one frame. A handler that calls Advance again gets false
// back and nothing runs. Handlers removed during the frame are skipped.
func (s *Scheduler) Advance() bool {
	if s.firing {
		return false
	}
	s.firing = true
	defer func() { s.firing = false }()

	s.frame++
	for _, t := range s.handlers.Keys() {
		if fn, ok := s.handlers.Get(t); ok {
			fn()
		}
	}
	return true
}

// Handlers returns the number of live subscriptions.
func (s *Scheduler) Handlers() int { return s.handlers.Len() }

// Frame returns how many frames have been advanced.
func (s *Scheduler) Frame() int { return s.frame }
