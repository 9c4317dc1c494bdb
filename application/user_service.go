package application

import (
	"context"
	"fmt"

	"fortuna/config"
	"fortuna/domain/entities"
	"fortuna/domain/events"
	"fortuna/domain/utils"

	log "github.com/sirupsen/logrus"
)

// UserService handles account creation and read-side queries.
type UserService struct {
	uowFactory UnitOfWorkFactory
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory) *UserService {
	return &UserService{uowFactory: uowFactory}
}

// Profile is the read model for an account page.
type Profile struct {
	User         *entities.User `json:"user"`
	TotalWagered int64          `json:"totalWagered"`
}

// Register creates a new account with the configured starting balance
// and writes the grant as the account's first ledger entry.
func (s *UserService) Register(ctx context.Context, username string) (*entities.User, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	startingBalance := config.Get().StartingBalance

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().Create(ctx, username, startingBalance)
	if err != nil {
		return nil, err
	}

	tx := &entities.Transaction{
		UserID:        user.ID,
		Type:          entities.TransactionTypeInitial,
		Payout:        startingBalance,
		BalanceBefore: 0,
		BalanceAfter:  startingBalance,
	}
	if err := utils.RecordTransaction(ctx, uow.TransactionRepository(), uow.EventBus(), tx); err != nil {
		return nil, err
	}

	if err := uow.EventBus().Publish(events.UserCreatedEvent{
		UserID:         user.ID,
		Username:       user.Username,
		InitialBalance: startingBalance,
	}); err != nil {
		log.WithError(err).Error("Failed to publish user created event")
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"userID":   user.ID,
		"username": user.Username,
		"balance":  user.Balance,
	}).Info("User registered")

	return user, nil
}

// GetProfile returns the account with its lifetime wagered total.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := loadUser(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	totalWagered, err := uow.TransactionRepository().GetTotalWagered(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &Profile{User: user, TotalWagered: totalWagered}, nil
}

// GetHistory returns the user's most recent ledger entries.
func (s *UserService) GetHistory(ctx context.Context, userID int64, limit int) ([]*entities.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if _, err := loadUser(ctx, uow, userID); err != nil {
		return nil, err
	}

	transactions, err := uow.TransactionRepository().GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return transactions, nil
}
