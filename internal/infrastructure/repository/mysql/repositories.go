package sqlrepository

import (
	"github.com/eazybank/banking/internal/domain"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Repositories struct {
	Customer domain.CustomerRepository
	Account  domain.AccountRepository
}

func NewRepositories(db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *Repositories {
	return &Repositories{
		Customer: NewCustomerRepository(db, redisClient, logger),
		Account:  NewAccountRepository(db, redisClient, logger),
	}
}
