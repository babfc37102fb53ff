package repository

import (
	"context"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/pkg/xcontext"
)

type RankRepository interface {
	Create(ctx context.Context, rank *entity.Rank) error
	GetAll(ctx context.Context) ([]entity.Rank, error)
}

type rankRepository struct{}

func NewRankRepository() *rankRepository {
	return &rankRepository{}
}

func (r *rankRepository) Create(ctx context.Context, rank *entity.Rank) error {
	return xcontext.DB(ctx).Create(rank).Error
}

func (r *rankRepository) GetAll(ctx context.Context) ([]entity.Rank, error) {
	var result []entity.Rank
	if err := xcontext.DB(ctx).Order("sort_order ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
