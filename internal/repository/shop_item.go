package repository

import (
	"context"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ShopItemRepository interface {
	Create(ctx context.Context, item *entity.ShopItem) error
	GetByID(ctx context.Context, id string) (*entity.ShopItem, error)
	GetList(ctx context.Context, activeOnly bool) ([]entity.ShopItem, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error

	// DecreaseStock takes one unit of a finite stock. It returns
	// gorm.ErrRecordNotFound if the item is sold out.
	DecreaseStock(ctx context.Context, id string) error
}

type shopItemRepository struct{}

func NewShopItemRepository() *shopItemRepository {
	return &shopItemRepository{}
}

func (r *shopItemRepository) Create(ctx context.Context, item *entity.ShopItem) error {
	return xcontext.DB(ctx).Create(item).Error
}

func (r *shopItemRepository) GetByID(ctx context.Context, id string) (*entity.ShopItem, error) {
	var result entity.ShopItem
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *shopItemRepository) GetList(ctx context.Context, activeOnly bool) ([]entity.ShopItem, error) {
	tx := xcontext.DB(ctx).Order("banana_cost ASC")
	if activeOnly {
		tx = tx.Where("is_active=?", true)
	}

	var result []entity.ShopItem
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *shopItemRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	tx := xcontext.DB(ctx).Model(&entity.ShopItem{}).Where("id=?", id).Updates(data)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *shopItemRepository) DecreaseStock(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Model(&entity.ShopItem{}).
		Where("id=? AND stock > 0", id).
		Update("stock", gorm.Expr("stock-1"))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
