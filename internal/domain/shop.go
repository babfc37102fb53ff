package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/creatorhq/backend/internal/common"
	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/internal/model"
	"github.com/creatorhq/backend/internal/repository"
	"github.com/creatorhq/backend/pkg/crypto"
	"github.com/creatorhq/backend/pkg/errorx"
	"github.com/creatorhq/backend/pkg/pubsub"
	"github.com/creatorhq/backend/pkg/storage"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/fatih/structs"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const shopImageFormKey = "image"

type ShopDomain interface {
	CreateShopItem(context.Context, *model.CreateShopItemRequest) (*model.CreateShopItemResponse, error)
	UpdateShopItem(context.Context, *model.UpdateShopItemRequest) (*model.UpdateShopItemResponse, error)
	GetShopItems(context.Context, *model.GetShopItemsRequest) (*model.GetShopItemsResponse, error)
	Purchase(context.Context, *model.PurchaseRequest) (*model.PurchaseResponse, error)
	GetMyPurchases(context.Context, *model.GetMyPurchasesRequest) (*model.GetMyPurchasesResponse, error)
	RedeemPurchase(context.Context, *model.RedeemPurchaseRequest) (*model.RedeemPurchaseResponse, error)
}

type shopDomain struct {
	shopItemRepo       repository.ShopItemRepository
	purchaseRepo       repository.PurchaseRepository
	chatterStatsRepo   repository.ChatterStatsRepository
	transactionRepo    repository.TransactionRepository
	globalRoleVerifier *common.GlobalRoleVerifier
	storage            storage.Storage
	publisher          pubsub.Publisher

	now func() time.Time
}

func NewShopDomain(
	shopItemRepo repository.ShopItemRepository,
	purchaseRepo repository.PurchaseRepository,
	chatterStatsRepo repository.ChatterStatsRepository,
	transactionRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	storage storage.Storage,
	publisher pubsub.Publisher,
) *shopDomain {
	return &shopDomain{
		shopItemRepo:       shopItemRepo,
		purchaseRepo:       purchaseRepo,
		chatterStatsRepo:   chatterStatsRepo,
		transactionRepo:    transactionRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
		storage:            storage,
		publisher:          publisher,
		now:                time.Now,
	}
}

func (d *shopDomain) CreateShopItem(
	ctx context.Context, req *model.CreateShopItemRequest,
) (*model.CreateShopItemResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a name")
	}

	if req.BananaCost == nil {
		return nil, errorx.New(errorx.BadRequest, "Require a cost")
	}

	if *req.BananaCost < 0 {
		return nil, errorx.New(errorx.BadRequest, "The cost must not be negative")
	}

	item := &entity.ShopItem{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        req.Name,
		Description: req.Description,
		BananaCost:  *req.BananaCost,
		IsActive:    true,
		CreatedBy:   xcontext.RequestUserID(ctx),
	}

	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, errorx.New(errorx.BadRequest, "The stock must not be negative")
		}
		item.Stock = sql.NullInt64{Int64: *req.Stock, Valid: true}
	}

	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	imageURL, err := d.uploadImage(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	item.ImageURL = imageURL

	if err := d.shopItemRepo.Create(ctx, item); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create shop item: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateShopItemResponse{Item: model.ConvertShopItem(item)}, nil
}

func (d *shopDomain) UpdateShopItem(
	ctx context.Context, req *model.UpdateShopItemRequest,
) (*model.UpdateShopItemResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	data := structs.Map(req)
	if req.BananaCost != nil {
		if *req.BananaCost < 0 {
			return nil, errorx.New(errorx.BadRequest, "The cost must not be negative")
		}
		data["banana_cost"] = *req.BananaCost
	}

	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, errorx.New(errorx.BadRequest, "The stock must not be negative")
		}
		data["stock"] = *req.Stock
	} else if req.Unlimited {
		data["stock"] = nil
	}

	if req.IsActive != nil {
		data["is_active"] = *req.IsActive
	}

	if len(data) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Nothing to update")
	}

	if err := d.shopItemRepo.UpdateByID(ctx, req.ID, data); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found shop item")
		}

		xcontext.Logger(ctx).Errorf("Cannot update shop item: %v", err)
		return nil, errorx.Unknown
	}

	item, err := d.shopItemRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get shop item: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateShopItemResponse{Item: model.ConvertShopItem(item)}, nil
}

func (d *shopDomain) GetShopItems(
	ctx context.Context, req *model.GetShopItemsRequest,
) (*model.GetShopItemsResponse, error) {
	items, err := d.shopItemRepo.GetList(ctx, true)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get shop items: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.ShopItem{}
	for i := range items {
		result = append(result, *model.ConvertShopItem(&items[i]))
	}

	return &model.GetShopItemsResponse{Items: result}, nil
}

func (d *shopDomain) Purchase(
	ctx context.Context, req *model.PurchaseRequest,
) (*model.PurchaseResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	item, err := d.shopItemRepo.GetByID(ctx, req.ShopItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found shop item")
		}

		xcontext.Logger(ctx).Errorf("Cannot get shop item: %v", err)
		return nil, errorx.Unknown
	}

	if !item.IsActive {
		return nil, errorx.New(errorx.BadRequest, "The item is not available")
	}

	if item.Stock.Valid && item.Stock.Int64 <= 0 {
		return nil, errorx.New(errorx.OutOfStock, "The item is out of stock")
	}

	purchase := &entity.Purchase{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      userID,
		ShopItemID:  item.ID,
		BananaSpent: item.BananaCost,
		VoucherCode: d.voucherCode(ctx),
		Status:      entity.PurchaseUnused,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if _, err := d.chatterStatsRepo.GetOrCreate(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get chatter stats: %v", err)
		return nil, errorx.Unknown
	}

	if item.BananaCost > 0 {
		if err := d.chatterStatsRepo.DecreaseBananas(ctx, userID, item.BananaCost); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.InsufficientBalance, "You do not have enough bananas")
			}

			xcontext.Logger(ctx).Errorf("Cannot decrease bananas: %v", err)
			return nil, errorx.Unknown
		}
	}

	if item.Stock.Valid {
		if err := d.shopItemRepo.DecreaseStock(ctx, item.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.OutOfStock, "The item is out of stock")
			}

			xcontext.Logger(ctx).Errorf("Cannot decrease stock: %v", err)
			return nil, errorx.Unknown
		}
	}

	if err := d.purchaseRepo.Create(ctx, purchase); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create purchase: %v", err)
		return nil, errorx.Unknown
	}

	err = d.transactionRepo.CreateBanana(ctx, &entity.BananaTransaction{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		UserID:        userID,
		Amount:        -item.BananaCost,
		SourceType:    entity.SourcePurchase,
		SourceID:      purchase.ID,
		Note:          fmt.Sprintf("Purchased %s", item.Name),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create banana transaction: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	common.PromCounters[common.PurchaseTotal].WithLabelValues(item.ID).Inc()
	publishEvent(ctx, d.publisher, common.PurchaseCreatedTopic, purchase.ID, model.PurchaseCreatedEvent{
		PurchaseID:  purchase.ID,
		UserID:      userID,
		ShopItemID:  item.ID,
		BananaSpent: item.BananaCost,
	})

	result, err := d.purchaseRepo.GetByID(ctx, purchase.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get purchase: %v", err)
		return nil, errorx.Unknown
	}

	return &model.PurchaseResponse{Purchase: model.ConvertPurchase(result)}, nil
}

func (d *shopDomain) GetMyPurchases(
	ctx context.Context, req *model.GetMyPurchasesRequest,
) (*model.GetMyPurchasesResponse, error) {
	purchases, err := d.purchaseRepo.GetByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get purchases: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Purchase{}
	for i := range purchases {
		result = append(result, model.ConvertPurchase(&purchases[i]))
	}

	return &model.GetMyPurchasesResponse{Purchases: result}, nil
}

func (d *shopDomain) RedeemPurchase(
	ctx context.Context, req *model.RedeemPurchaseRequest,
) (*model.RedeemPurchaseResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	purchase, err := d.purchaseRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found purchase")
		}

		xcontext.Logger(ctx).Errorf("Cannot get purchase: %v", err)
		return nil, errorx.Unknown
	}

	if purchase.Status != entity.PurchaseUnused {
		return nil, errorx.New(errorx.BadRequest, "The voucher is %s", purchase.Status)
	}

	err = d.purchaseRepo.Redeem(ctx, purchase.ID, xcontext.RequestUserID(ctx), d.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "The voucher has been used already")
		}

		xcontext.Logger(ctx).Errorf("Cannot redeem purchase: %v", err)
		return nil, errorx.Unknown
	}

	purchase, err = d.purchaseRepo.GetByID(ctx, purchase.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get purchase: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RedeemPurchaseResponse{Purchase: model.ConvertPurchase(purchase)}, nil
}

// voucherCode returns <prefix>-<base36 millis>-<4 random chars>.
func (d *shopDomain) voucherCode(ctx context.Context) string {
	prefix := xcontext.Configs(ctx).Gamification.VoucherPrefix
	timestamp := strings.ToUpper(strconv.FormatInt(d.now().UnixMilli(), 36))
	return fmt.Sprintf("%s-%s-%s", prefix, timestamp, crypto.GenerateRandomCode(4))
}

// uploadImage stores the optional "image" part of a multipart request and
// returns its url, or an empty string if there is none.
func (d *shopDomain) uploadImage(ctx context.Context, itemID string) (string, error) {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return "", nil
	}

	cfg := xcontext.Configs(ctx)
	if err := req.ParseMultipartForm(cfg.File.MaxSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}

		xcontext.Logger(ctx).Debugf("Cannot parse multipart form: %v", err)
		return "", errorx.New(errorx.BadRequest, "Invalid image")
	}

	headers := req.MultipartForm.File[shopImageFormKey]
	if len(headers) == 0 {
		return "", nil
	}

	data, mime, err := readAttachment(ctx, headers[0])
	if err != nil {
		return "", err
	}

	if !common.IsImage(mime) {
		return "", errorx.New(errorx.BadRequest, "The file %s is not a valid image", headers[0].Filename)
	}

	resp, err := d.storage.Upload(ctx, &storage.UploadObject{
		Bucket:   cfg.Gamification.ShopBucket,
		Prefix:   itemID,
		FileName: fmt.Sprintf("%d%s", d.now().UnixMilli(), filepath.Ext(headers[0].Filename)),
		Mime:     mime,
		Data:     data,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
		return "", errorx.Unknown
	}

	return resp.Url, nil
}
