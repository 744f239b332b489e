package redisrepository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eazybank/banking/internal/domain"
	"github.com/go-redis/redis/v8"
)

var ErrCacheMiss = errors.New("not in cache")

// CustomerCache is a read-through cache for customers keyed by mobile
// number, sitting in front of the MySQL repository.
type CustomerCache struct {
	client   *redis.Client
	cacheTTL time.Duration
}

func NewCustomerCache(client *redis.Client, cacheTTL time.Duration) *CustomerCache {
	return &CustomerCache{
		client:   client,
		cacheTTL: cacheTTL,
	}
}

func (c *CustomerCache) FindByMobileNumber(ctx context.Context, mobileNumber string) (*domain.Customer, error) {
	key := c.customerKey(mobileNumber)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	var customer domain.Customer
	if err := json.Unmarshal(data, &customer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal customer: %w", err)
	}

	return &customer, nil
}

func (c *CustomerCache) Save(ctx context.Context, customer *domain.Customer) error {
	key := c.customerKey(customer.MobileNumber)

	data, err := json.Marshal(customer)
	if err != nil {
		return fmt.Errorf("failed to marshal customer: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}

	return nil
}

func (c *CustomerCache) Delete(ctx context.Context, mobileNumber string) error {
	key := c.customerKey(mobileNumber)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

func (c *CustomerCache) customerKey(mobileNumber string) string {
	return fmt.Sprintf("customer:mobile:%s", mobileNumber)
}
