package certificate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/harborlabs/fleetdocs/internal/extraction"
)

// PendingContext is the server-side state needed to resume an upload after
// the user picks a resolution. The API contract round-trips the same data
// through the client; this cache is a tighter-validation copy keyed by an
// opaque token, preferred over the client blob when both are present.
type PendingContext struct {
	ShipID   uuid.UUID                    `json:"ship_id"`
	Analysis *extraction.DocumentAnalysis `json:"analysis"`
	Upload   *StagedUpload                `json:"upload"`
}

const pendingTTL = 30 * time.Minute

type PendingStore struct {
	client *redis.Client
}

func NewPendingStore(client *redis.Client) *PendingStore {
	return &PendingStore{client: client}
}

func (p *PendingStore) Put(ctx context.Context, pc PendingContext) (string, error) {
	token := uuid.NewString()
	data, err := json.Marshal(pc)
	if err != nil {
		return "", fmt.Errorf("marshal pending context: %w", err)
	}
	if err := p.client.Set(ctx, pendingKey(token), data, pendingTTL).Err(); err != nil {
		return "", fmt.Errorf("store pending context: %w", err)
	}
	return token, nil
}

// Get returns nil without error when the token is unknown or expired; the
// caller falls back to the client-supplied context.
func (p *PendingStore) Get(ctx context.Context, token string) (*PendingContext, error) {
	val, err := p.client.Get(ctx, pendingKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load pending context: %w", err)
	}
	var pc PendingContext
	if err := json.Unmarshal([]byte(val), &pc); err != nil {
		return nil, fmt.Errorf("unmarshal pending context: %w", err)
	}
	return &pc, nil
}

func (p *PendingStore) Delete(ctx context.Context, token string) {
	p.client.Del(ctx, pendingKey(token))
}

func pendingKey(token string) string {
	return "pending_upload:" + token
}
