package redisrepository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eazybank/banking/internal/domain"
	"github.com/go-redis/redis/v8"
)

// AccountCache caches accounts keyed by owning customer id.
type AccountCache struct {
	client   *redis.Client
	cacheTTL time.Duration
}

func NewAccountCache(client *redis.Client, cacheTTL time.Duration) *AccountCache {
	return &AccountCache{
		client:   client,
		cacheTTL: cacheTTL,
	}
}

func (c *AccountCache) FindByCustomerID(ctx context.Context, customerID int64) (*domain.Account, error) {
	key := c.accountKey(customerID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	var account domain.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return &account, nil
}

func (c *AccountCache) Save(ctx context.Context, account *domain.Account) error {
	key := c.accountKey(account.CustomerID)

	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}

	return nil
}

func (c *AccountCache) Delete(ctx context.Context, customerID int64) error {
	key := c.accountKey(customerID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func (c *AccountCache) accountKey(customerID int64) string {
	return fmt.Sprintf("account:customer:%d", customerID)
}
