package sqlrepository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eazybank/banking/internal/domain"
	"github.com/eazybank/banking/internal/infrastructure/persistence"
	redisrepository "github.com/eazybank/banking/internal/infrastructure/repository/redis"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GORMCustomerRepository struct {
	db     *gorm.DB
	cache  *redisrepository.CustomerCache
	logger *zap.Logger
}

func NewCustomerRepository(db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *GORMCustomerRepository {
	return &GORMCustomerRepository{
		db:     db,
		cache:  redisrepository.NewCustomerCache(redisClient, 5*time.Minute),
		logger: logger,
	}
}

func (r *GORMCustomerRepository) FindByMobileNumber(ctx context.Context, mobileNumber string) (*domain.Customer, error) {
	cached, err := r.cache.FindByMobileNumber(ctx, mobileNumber)
	if err == nil {
		r.logger.Debug("customer cache hit", zap.String("mobile_number", mobileNumber))
		return cached, nil
	}

	r.logger.Debug("customer cache miss, querying MySQL", zap.String("mobile_number", mobileNumber))

	var model persistence.CustomerModel
	result := r.db.WithContext(ctx).First(&model, "mobile_number = ?", mobileNumber)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		r.logger.Error("failed to query customer", zap.Error(result.Error))
		return nil, fmt.Errorf("database error: %w", result.Error)
	}

	customer := model.ToDomain()

	// Update cache asynchronously
	go r.cache.Save(context.Background(), customer)

	return customer, nil
}

func (r *GORMCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	model := persistence.CustomerModelFromDomain(customer)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return domain.ErrCustomerAlreadyExists
		}
		r.logger.Error("failed to create customer", zap.Error(result.Error))
		return fmt.Errorf("database error: %w", result.Error)
	}

	customer.ID = model.ID

	r.logger.Info("customer created",
		zap.Int64("customer_id", customer.ID),
		zap.String("mobile_number", customer.MobileNumber),
	)

	return nil
}

func (r *GORMCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	// Invalidate before writing so concurrent readers refetch fresh rows.
	if err := r.cache.Delete(ctx, customer.MobileNumber); err != nil {
		r.logger.Warn("failed to invalidate customer cache before update",
			zap.Error(err),
			zap.String("mobile_number", customer.MobileNumber))
	}

	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&persistence.CustomerModel{}).
		Where("id = ?", customer.ID).
		Updates(map[string]interface{}{
			"name":       customer.Name,
			"email":      customer.Email,
			"updated_at": now,
			"updated_by": domain.SystemUser,
		})

	if result.Error != nil {
		r.logger.Error("failed to update customer", zap.Error(result.Error))
		return fmt.Errorf("database error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}

	customer.UpdatedAt = &now
	customer.UpdatedBy = domain.SystemUser

	if err := r.cache.Save(ctx, customer); err != nil {
		r.logger.Warn("failed to refresh customer cache after update",
			zap.Error(err),
			zap.String("mobile_number", customer.MobileNumber))
	}

	return nil
}

func (r *GORMCustomerRepository) Delete(ctx context.Context, customerID int64) error {
	var model persistence.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCustomerNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := r.cache.Delete(ctx, model.MobileNumber); err != nil {
		r.logger.Warn("failed to invalidate customer cache before delete",
			zap.Error(err),
			zap.String("mobile_number", model.MobileNumber))
	}

	result := r.db.WithContext(ctx).Delete(&persistence.CustomerModel{}, "id = ?", customerID)
	if result.Error != nil {
		r.logger.Error("failed to delete customer", zap.Error(result.Error))
		return fmt.Errorf("database error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}

	r.logger.Info("customer deleted", zap.Int64("customer_id", customerID))

	return nil
}

func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}
