package repository

import (
	"context"
	"time"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Purchase, error)

	// Redeem returns gorm.ErrRecordNotFound if the purchase is not unused.
	Redeem(ctx context.Context, id, redeemedBy string, redeemedAt time.Time) error
}

type purchaseRepository struct{}

func NewPurchaseRepository() *purchaseRepository {
	return &purchaseRepository{}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return xcontext.DB(ctx).Omit("ShopItem").Create(purchase).Error
}

func (r *purchaseRepository) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	var result entity.Purchase
	if err := xcontext.DB(ctx).Preload("ShopItem").Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *purchaseRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Purchase, error) {
	var result []entity.Purchase
	err := xcontext.DB(ctx).
		Preload("ShopItem").
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *purchaseRepository) Redeem(ctx context.Context, id, redeemedBy string, redeemedAt time.Time) error {
	tx := xcontext.DB(ctx).Model(&entity.Purchase{}).
		Where("id=? AND status=?", id, entity.PurchaseUnused).
		Updates(map[string]any{
			"status":      entity.PurchaseRedeemed,
			"redeemed_by": redeemedBy,
			"redeemed_at": redeemedAt,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
