package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ikkim/storefront-backend/internal/pricing"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const selectionKeyPrefix = "selection:"

var ErrSessionNotFound = errors.New("selection session not found")

// SelectionSession is one shopper's variant selection for one product.
type SelectionSession struct {
	ID        string                 `json:"id"`
	ProductID uint                   `json:"product_id"`
	State     pricing.SelectionState `json:"state"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// SelectionStore keeps sessions as JSON with a sliding TTL.
type SelectionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSelectionStore(client *redis.Client, ttl time.Duration) *SelectionStore {
	return &SelectionStore{client: client, ttl: ttl}
}

func selectionKey(id string) string {
	return selectionKeyPrefix + id
}

// Save writes the session and resets its TTL.
func (s *SelectionStore) Save(ctx context.Context, session *SelectionSession) error {
	session.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal selection session: %w", err)
	}

	if err := s.client.Set(ctx, selectionKey(session.ID), payload, s.ttl).Err(); err != nil {
		logger.Error("Failed to save selection session", err, map[string]interface{}{
			"session_id": session.ID,
		})
		return err
	}

	logger.Debug("Selection session saved", map[string]interface{}{
		"session_id": session.ID,
		"product_id": session.ProductID,
		"items":      len(session.State.Items),
	})
	return nil
}

func (s *SelectionStore) Get(ctx context.Context, id string) (*SelectionSession, error) {
	raw, err := s.client.Get(ctx, selectionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		logger.Error("Failed to load selection session", err, map[string]interface{}{
			"session_id": id,
		})
		return nil, err
	}

	var session SelectionSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unmarshal selection session %s: %w", id, err)
	}
	return &session, nil
}

func (s *SelectionStore) Delete(ctx context.Context, id string) error {
	deleted, err := s.client.Del(ctx, selectionKey(id)).Result()
	if err != nil {
		logger.Error("Failed to delete selection session", err, map[string]interface{}{
			"session_id": id,
		})
		return err
	}
	if deleted == 0 {
		return ErrSessionNotFound
	}
	return nil
}
