package collections

import "github.com/samber/mo"

// link is either empty or more; nothing else implements it.
type link[T any] interface {
	isLink()
}

type empty[T any] struct{}

type more[T any] struct {
	node *node[T]
}

func (empty[T]) isLink() {}
func (more[T]) isLink() {}

type node[T any] struct {
	data T
	next link[T]
}

// take moves the link out of slot, leaving it empty.
func take[T any](slot *link[T]) link[T] {
	l := *slot
	*slot = empty[T]{}
	if l == nil {
		return empty[T]{}
	}
	return l
}

// Stack is a singly-linked LIFO list. The zero value is an empty stack.
// A Stack is not safe for concurrent use.
type Stack[T any] struct {
	head link[T]
}

type IntStack = Stack[int32]

func New[T any]() *Stack[T] {
	return &Stack[T]{head: empty[T]{}}
}

func (s *Stack[T]) IsEmpty() bool {
	_, ok := s.head.(more[T])
	return !ok
}

func (s *Stack[T]) Push(item T) {
	n := &node[T]{data: item, next: take(&s.head)}
	s.head = more[T]{node: n}
}

// Pop removes the top element. It returns None when the stack is empty.
func (s *Stack[T]) Pop() mo.Option[T] {
	switch l := take(&s.head).(type) {
	case more[T]:
		s.head = take(&l.node.next)
		return mo.Some(l.node.data)
	default:
		return mo.None[T]()
	}
}

// Peek returns a pointer to the top element without removing it. The pointer
// is valid until the stack is next modified.
func (s *Stack[T]) Peek() mo.Option[*T] {
	if l, ok := s.head.(more[T]); ok {
		return mo.Some(&l.node.data)
	}
	return mo.None[*T]()
}

// Clear drops every node one at a time, so tearing down a long chain never
// nests calls. The stack is empty and reusable afterwards.
func (s *Stack[T]) Clear() {
	current := take(&s.head)
	for {
		l, ok := current.(more[T])
		if !ok {
			return
		}
		current = take(&l.node.next)
	}
}
