package fsm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Flow data keys
const (
	KeyUsername  = "username"
	KeyEmail     = "email"
	KeyPassword1 = "password1"
	KeyToken     = "token"
)

// Session is one chat's state and the data collected by its flow
type Session struct {
	State State             `json:"state"`
	Data  map[string]string `json:"data"`
}

// NewSession returns an empty session
func NewSession() *Session {
	return &Session{Data: make(map[string]string)}
}

// Get returns a data value
func (s *Session) Get(key string) string {
	return s.Data[key]
}

// Set stores a data value
func (s *Session) Set(key, value string) {
	if s.Data == nil {
		s.Data = make(map[string]string)
	}
	s.Data[key] = value
}

// Token returns the API token of an authorized chat
func (s *Session) Token() string {
	return s.Data[KeyToken]
}

// Advance moves the session to the state following the current one
func (s *Session) Advance() error {
	next, ok := s.State.Next()
	if !ok {
		return fmt.Errorf("state %q has no successor", s.State)
	}
	s.State = next
	return nil
}

// Reset drops the flow data. A token survives unless dropToken is set.
func (s *Session) Reset(dropToken bool) {
	token := s.Token()
	s.Data = make(map[string]string)
	s.State = None
	if token != "" && !dropToken {
		s.Data[KeyToken] = token
		s.State = AuthorizedToken
	}
}

// Store persists sessions between updates
type Store interface {
	Get(ctx context.Context, chatID int64) (*Session, error)
	Set(ctx context.Context, chatID int64, s *Session) error
	Clear(ctx context.Context, chatID int64) error
}

func encode(s *Session) (string, error) {
	b, err := json.Marshal(s.Data)
	if err != nil {
		return "", fmt.Errorf("encode session data: %w", err)
	}
	return string(b), nil
}

func decode(state, data string) (*Session, error) {
	s := NewSession()
	s.State = State(state)
	if data != "" {
		if err := json.Unmarshal([]byte(data), &s.Data); err != nil {
			return nil, fmt.Errorf("decode session data: %w", err)
		}
	}
	if s.Data == nil {
		s.Data = make(map[string]string)
	}
	return s, nil
}
