package service

import (
	"context"

	"go.uber.org/zap"

	"trakr-data/internal/domain"
	"trakr-data/internal/models"
	"trakr-data/internal/repository"
)

// AccountService 账号服务接口
type AccountService interface {
	ListAccounts(ctx context.Context, filter repository.AccountsFilter, page models.Pagination) ([]*domain.Account, *models.Pagination, error)
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	CreateAccount(ctx context.Context, create *domain.AccountCreate) (*domain.Account, error)
	UpdateAccount(ctx context.Context, id int64, update *domain.AccountUpdate) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
}

type accountService struct {
	repo   repository.AccountsRepository
	logger *zap.Logger
}

// NewAccountService 创建 AccountService 实例
func NewAccountService(repo repository.AccountsRepository, logger *zap.Logger) AccountService {
	return &accountService{repo: repo, logger: logger}
}

func (s *accountService) ListAccounts(ctx context.Context, filter repository.AccountsFilter, page models.Pagination) ([]*domain.Account, *models.Pagination, error) {
	page.Normalize()
	accounts, total, err := s.repo.ListAccounts(ctx, filter, page)
	if err != nil {
		return nil, nil, err
	}
	page.TotalRecords = total
	return accounts, &page, nil
}

func (s *accountService) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *accountService) CreateAccount(ctx context.Context, create *domain.AccountCreate) (*domain.Account, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}
	account, err := s.repo.CreateAccount(ctx, create)
	if err != nil {
		return nil, err
	}
	s.logger.Info("account created",
		zap.Int64("sn", account.SN),
		zap.String("account", account.Account),
		zap.String("organization", account.Organization))
	return account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, id int64, update *domain.AccountUpdate) (*domain.Account, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	account, err := s.repo.UpdateAccount(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.logger.Info("account updated", zap.Int64("sn", id))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteAccount(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NotFoundf("account %d not found", id)
	}
	s.logger.Info("account deleted", zap.Int64("sn", id))
	return nil
}
