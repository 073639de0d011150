package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/crm-dashboard/internal/models"
)

// ClientCache guarda o agregado do cliente (com billing + contacts) em redis.
// Cache de leitura apenas: toda mutação invalida a chave depois do commit.
// Com addr vazio o cache fica desligado (todos os métodos viram no-op).
type ClientCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr, password string, db int) *ClientCache {
	if addr == "" {
		return nil
	}
	return &ClientCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: 5 * time.Minute,
	}
}

func key(clientID string) string {
	return "client:aggregate:" + clientID
}

func (c *ClientCache) GetAggregate(ctx context.Context, clientID string) (*models.Client, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(clientID)).Bytes()
	if err != nil {
		return nil, false
	}

	var client models.Client
	if err := json.Unmarshal(raw, &client); err != nil {
		return nil, false
	}
	return &client, true
}

func (c *ClientCache) SetAggregate(ctx context.Context, client *models.Client) {
	if c == nil || client == nil {
		return
	}

	raw, err := json.Marshal(client)
	if err != nil {
		return
	}
	// Best-effort: falha de cache nunca falha a request.
	c.rdb.Set(ctx, key(client.ID), raw, c.ttl)
}

func (c *ClientCache) Invalidate(ctx context.Context, clientID string) {
	if c == nil || clientID == "" {
		return
	}
	c.rdb.Del(ctx, key(clientID))
}
