package sqlrepository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eazybank/banking/internal/domain"
	"github.com/eazybank/banking/internal/infrastructure/persistence"
	redisrepository "github.com/eazybank/banking/internal/infrastructure/repository/redis"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// accountNumberAttempts bounds the redraws when a generated account number
// collides with an existing row.
const accountNumberAttempts = 5

type GORMAccountRepository struct {
	db     *gorm.DB
	cache  *redisrepository.AccountCache
	logger *zap.Logger
}

func NewAccountRepository(db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *GORMAccountRepository {
	return &GORMAccountRepository{
		db:     db,
		cache:  redisrepository.NewAccountCache(redisClient, 5*time.Minute),
		logger: logger,
	}
}

func (r *GORMAccountRepository) FindByCustomerID(ctx context.Context, customerID int64) (*domain.Account, error) {
	cached, err := r.cache.FindByCustomerID(ctx, customerID)
	if err == nil {
		r.logger.Debug("account cache hit", zap.Int64("customer_id", customerID))
		return cached, nil
	}

	var model persistence.AccountModel
	result := r.db.WithContext(ctx).First(&model, "customer_id = ?", customerID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		r.logger.Error("failed to query account", zap.Error(result.Error))
		return nil, fmt.Errorf("database error: %w", result.Error)
	}

	account := model.ToDomain()

	go r.cache.Save(context.Background(), account)

	return account, nil
}

// Create persists the account. The account number is a random draw, so a
// duplicate-key collision redraws and retries a bounded number of times.
func (r *GORMAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	for attempt := 1; ; attempt++ {
		model := persistence.AccountModelFromDomain(account)

		result := r.db.WithContext(ctx).Create(model)
		if result.Error == nil {
			r.logger.Info("account created",
				zap.Int64("account_number", account.AccountNumber),
				zap.Int64("customer_id", account.CustomerID),
			)
			return nil
		}

		if !isDuplicateError(result.Error) {
			r.logger.Error("failed to create account", zap.Error(result.Error))
			return fmt.Errorf("database error: %w", result.Error)
		}

		if attempt == accountNumberAttempts {
			r.logger.Error("account number collisions exhausted retries",
				zap.Int64("customer_id", account.CustomerID))
			return fmt.Errorf("database error: %w", result.Error)
		}

		r.logger.Warn("account number collision, redrawing",
			zap.Int64("account_number", account.AccountNumber),
			zap.Int("attempt", attempt),
		)
		account.AccountNumber = domain.GenerateAccountNumber()
	}
}

func (r *GORMAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if err := r.cache.Delete(ctx, account.CustomerID); err != nil {
		r.logger.Warn("failed to invalidate account cache before update",
			zap.Error(err),
			zap.Int64("customer_id", account.CustomerID))
	}

	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&persistence.AccountModel{}).
		Where("account_number = ?", account.AccountNumber).
		Updates(map[string]interface{}{
			"customer_id":    account.CustomerID,
			"account_type":   account.AccountType,
			"branch_address": account.BranchAddress,
			"updated_at":     now,
			"updated_by":     domain.SystemUser,
		})

	if result.Error != nil {
		r.logger.Error("failed to update account", zap.Error(result.Error))
		return fmt.Errorf("database error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}

	account.UpdatedAt = &now
	account.UpdatedBy = domain.SystemUser

	if err := r.cache.Save(ctx, account); err != nil {
		r.logger.Warn("failed to refresh account cache after update",
			zap.Error(err),
			zap.Int64("customer_id", account.CustomerID))
	}

	return nil
}

func (r *GORMAccountRepository) DeleteByCustomerID(ctx context.Context, customerID int64) error {
	if err := r.cache.Delete(ctx, customerID); err != nil {
		r.logger.Warn("failed to invalidate account cache before delete",
			zap.Error(err),
			zap.Int64("customer_id", customerID))
	}

	result := r.db.WithContext(ctx).Delete(&persistence.AccountModel{}, "customer_id = ?", customerID)
	if result.Error != nil {
		r.logger.Error("failed to delete account", zap.Error(result.Error))
		return fmt.Errorf("database error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}

	r.logger.Info("account deleted", zap.Int64("customer_id", customerID))

	return nil
}
