package stack

import "errors"

// Sentinel errors
var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrEmptyStack     = errors.New("empty stack")
)

// Bounded is a LIFO stack whose capacity is fixed at construction.
// The zero value has capacity 0 and rejects every push.
type Bounded[T any] struct {
	items    []T
	capacity int
}

// NewBounded creates a stack that holds at most capacity items.
func NewBounded[T any](capacity int) *Bounded[T] {
	if capacity < 0 {
		capacity = 0
	}

	return &Bounded[T]{items: make([]T, 0, capacity), capacity: capacity}
}

// Push adds value on top of the stack.
func (s *Bounded[T]) Push(value T) error {
	if len(s.items) >= s.capacity {
		return ErrStackOverflow
	}

	s.items = append(s.items, value)

	return nil
}

// Pop removes and returns the top value.
func (s *Bounded[T]) Pop() (T, error) {
	var zero T
	if len(s.items) == 0 {
		return zero, ErrStackUnderflow
	}

	last := len(s.items) - 1
	value := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]

	return value, nil
}

// Peek returns the top value without removing it.
func (s *Bounded[T]) Peek() (T, error) {
	var zero T
	if len(s.items) == 0 {
		return zero, ErrEmptyStack
	}

	return s.items[len(s.items)-1], nil
}

// IsEmpty reports whether the stack holds no values.
func (s *Bounded[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Size returns the number of values on the stack.
func (s *Bounded[T]) Size() int {
	return len(s.items)
}

// Cap returns the maximum number of values the stack accepts.
func (s *Bounded[T]) Cap() int {
	return s.capacity
}
