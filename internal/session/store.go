package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Store persists sessions in Redis with a rolling TTL. A nil client
// degrades to per-request in-memory sessions (no persistence), which keeps
// the app serving reads when Redis is down.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a session store with the given lifetime.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Load fetches the session for id, or creates a new anonymous session when
// id is empty, unknown, or expired.
func (st *Store) Load(ctx context.Context, id string) (*Session, error) {
	if id == "" || st.client == nil {
		return st.newSession(), nil
	}

	b, err := st.client.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return st.newSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}

	var data payload
	if err := json.Unmarshal(b, &data); err != nil {
		// Corrupt record: drop it and start over.
		st.client.Del(ctx, keyPrefix+id)
		return st.newSession(), nil
	}

	return &Session{id: id, data: data}, nil
}

// Save persists the session if it changed during the request and refreshes
// its TTL.
func (st *Store) Save(ctx context.Context, s *Session) error {
	if s == nil || !s.dirty || st.client == nil {
		return nil
	}

	b, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	if err := st.client.Set(ctx, keyPrefix+s.id, b, st.ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	s.dirty = false
	return nil
}

// Destroy removes the server-side record entirely.
func (st *Store) Destroy(ctx context.Context, s *Session) error {
	if s == nil || st.client == nil {
		return nil
	}
	if err := st.client.Del(ctx, keyPrefix+s.id).Err(); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}
	s.data = payload{}
	s.dirty = false
	return nil
}

func (st *Store) newSession() *Session {
	return &Session{id: uuid.NewString(), fresh: true}
}
