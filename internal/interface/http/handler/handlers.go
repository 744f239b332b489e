package handler

import (
	"github.com/eazybank/banking/internal/application/service"
	"github.com/eazybank/banking/internal/domain"
	sqlrepository "github.com/eazybank/banking/internal/infrastructure/repository/mysql"
	"go.uber.org/zap"
)

type Handlers struct {
	Account  *AccountHandler
	Customer *CustomerHandler
}

func NewHandlers(
	repos *sqlrepository.Repositories,
	loansClient domain.LoansClient,
	cardsClient domain.CardsClient,
	eventPublisher domain.EventPublisher,
	logger *zap.Logger,
) *Handlers {
	accountService := service.NewAccountService(repos.Customer, repos.Account, eventPublisher, logger)
	detailsService := service.NewCustomerDetailsService(repos.Customer, repos.Account, loansClient, cardsClient, logger)
	return &Handlers{
		Account:  NewAccountHandler(accountService, logger),
		Customer: NewCustomerHandler(detailsService, logger),
	}
}
