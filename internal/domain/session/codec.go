package session

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Marshal serializes a session for the durable store.
func Marshal(s *Session) ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

// Unmarshal restores a session from its stored form.
func Unmarshal(data []byte) (*Session, error) {
	var s Session
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Guesses == nil {
		s.Guesses = make(map[string]*GuessRecord)
	}
	return &s, nil
}
