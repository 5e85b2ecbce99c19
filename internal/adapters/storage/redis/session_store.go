package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/PabloGalante/atelier-agent/internal/domain"
)

// DefaultTTL is how long an idle session survives.
const DefaultTTL = 24 * time.Hour

var ErrSessionExists = errors.New("session already exists")

type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	// KeyPrefix namespaces session keys. Defaults to "atelier:session:".
	KeyPrefix string
}

// SessionStore keeps each conversation as one JSON value. Every write
// refreshes the TTL.
type SessionStore struct {
	rdb    *goredis.Client
	ttl    time.Duration
	prefix string
}

var _ domain.SessionStore = (*SessionStore)(nil)

// NewSessionStore connects and pings the server.
func NewSessionStore(ctx context.Context, opts Options) (*SessionStore, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis: address is required")
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "atelier:session:"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &SessionStore{rdb: rdb, ttl: opts.TTL, prefix: opts.KeyPrefix}, nil
}

func (s *SessionStore) Close() error {
	return s.rdb.Close()
}

func (s *SessionStore) key(id domain.SessionID) string {
	return s.prefix + string(id)
}

func (s *SessionStore) Create(ctx context.Context, state *domain.ConversationState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	ok, err := s.rdb.SetNX(ctx, s.key(state.SessionID), raw, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis Create session: %w", err)
	}
	if !ok {
		return ErrSessionExists
	}
	return nil
}

// Put overwrites an existing session. Unknown ids return ErrSessionNotFound.
func (s *SessionStore) Put(ctx context.Context, state *domain.ConversationState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	ok, err := s.rdb.SetXX(ctx, s.key(state.SessionID), raw, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis Put session: %w", err)
	}
	if !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id domain.SessionID) (*domain.ConversationState, error) {
	raw, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis Get session: %w", err)
	}

	var state domain.ConversationState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &state, nil
}

// TTL reports the remaining lifetime of a session key.
func (s *SessionStore) TTL(ctx context.Context, id domain.SessionID) (time.Duration, error) {
	return s.rdb.TTL(ctx, s.key(id)).Result()
}
