package repository

import (
	"context"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/pkg/xcontext"
)

type TransactionRepository interface {
	CreateXP(ctx context.Context, tx *entity.XPTransaction) error
	CreateBanana(ctx context.Context, tx *entity.BananaTransaction) error
	GetBananaByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.BananaTransaction, error)
}

type transactionRepository struct{}

func NewTransactionRepository() *transactionRepository {
	return &transactionRepository{}
}

func (r *transactionRepository) CreateXP(ctx context.Context, tx *entity.XPTransaction) error {
	return xcontext.DB(ctx).Create(tx).Error
}

func (r *transactionRepository) CreateBanana(ctx context.Context, tx *entity.BananaTransaction) error {
	return xcontext.DB(ctx).Create(tx).Error
}

func (r *transactionRepository) GetBananaByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.BananaTransaction, error) {
	var result []entity.BananaTransaction
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
