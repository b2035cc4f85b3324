package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ai-bridge/backend/internal/engine/answers"
	"github.com/ai-bridge/backend/internal/session"
	"github.com/ai-bridge/backend/pkg/circuitbreaker"
	"github.com/ai-bridge/backend/pkg/logger"
)

// Store is the redis-backed session.Store. Answer sets are stored as JSON
// under a per-session key with a sliding TTL. Calls go through a circuit
// breaker so a redis outage fails fast instead of stalling every request.
type Store struct {
	client  *redis.Client
	breaker *circuitbreaker.CircuitBreaker
	ttl     time.Duration
}

func NewStore(host string, port int, password string, db int, ttl time.Duration) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	breaker := circuitbreaker.New("session-store", circuitbreaker.Config{
		FailureThreshold: 5,
		Timeout:          30 * time.Second,
		Logger:           logger.Log,
	})

	logger.Info("Redis session store initialized",
		zap.String("addr", fmt.Sprintf("%s:%d", host, port)),
		zap.Duration("ttl", ttl),
	)

	return &Store{client: client, breaker: breaker, ttl: ttl}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (s *Store) Create(ctx context.Context) (string, error) {
	id := uuid.New().String()
	data, err := json.Marshal(answers.NewSet())
	if err != nil {
		return "", fmt.Errorf("failed to marshal answer set: %w", err)
	}

	err = s.breaker.Execute(ctx, func() error {
		return s.client.Set(ctx, sessionKey(id), data, s.ttl).Err()
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	logger.Debug("Session created", zap.String("session_id", id))
	return id, nil
}

func (s *Store) GetAnswers(ctx context.Context, sessionID string) (answers.Set, error) {
	var data []byte
	var missing bool
	err := s.breaker.Execute(ctx, func() error {
		b, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
		if err == redis.Nil {
			// A miss is a normal outcome, not a store failure.
			missing = true
			return nil
		}
		data = b
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if missing {
		return nil, session.ErrNotFound
	}

	var set answers.Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answer set: %w", err)
	}
	if set == nil {
		set = answers.NewSet()
	}
	return set, nil
}

func (s *Store) SaveAnswers(ctx context.Context, sessionID string, set answers.Set) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to marshal answer set: %w", err)
	}

	var existed bool
	err = s.breaker.Execute(ctx, func() error {
		var err error
		existed, err = s.client.SetXX(ctx, sessionKey(sessionID), data, s.ttl).Result()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if !existed {
		return session.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	var removed int64
	err := s.breaker.Execute(ctx, func() error {
		var err error
		removed, err = s.client.Del(ctx, sessionKey(sessionID)).Result()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if removed == 0 {
		return session.ErrNotFound
	}
	return nil
}
