package mcp

import (
	"sync"

	"github.com/samber/mo"

	"github.com/mholzen/lifo/pkg/collections"
)

// Session is a stack shared by every client of one server. The stack itself
// has no locking; Session serializes access to it.
type Session struct {
	mu    sync.Mutex
	stack collections.IntStack
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Push(value int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stack.Push(value)
}

func (s *Session) Pop() mo.Option[int32] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stack.Pop()
}

// Peek copies the top value out while the lock is held, since a pointer into
// the stack would outlive it.
func (s *Session) Peek() mo.Option[int32] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if top, ok := s.stack.Peek().Get(); ok {
		return mo.Some(*top)
	}
	return mo.None[int32]()
}

func (s *Session) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stack.IsEmpty()
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stack.Clear()
}
