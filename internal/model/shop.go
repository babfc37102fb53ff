package model

// CreateShopItemRequest is accepted as json or as a multipart form with an
// optional "image" part.
type CreateShopItemRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	BananaCost  *int64 `json:"banana_cost" form:"banana_cost"`
	Stock       *int64 `json:"stock" form:"stock"`
	IsActive    *bool  `json:"is_active" form:"is_active"`
}

type CreateShopItemResponse struct {
	Item *ShopItem `json:"item"`
}

type UpdateShopItemRequest struct {
	ID          string `json:"id" form:"id" structs:"-"`
	Name        string `json:"name" form:"name" structs:"name,omitempty"`
	Description string `json:"description" form:"description" structs:"description,omitempty"`
	BananaCost  *int64 `json:"banana_cost" form:"banana_cost" structs:"-"`
	Stock       *int64 `json:"stock" form:"stock" structs:"-"`
	// Unlimited removes the stock limit. It is ignored if Stock is set.
	Unlimited bool  `json:"unlimited" form:"unlimited" structs:"-"`
	IsActive  *bool `json:"is_active" form:"is_active" structs:"-"`
}

type UpdateShopItemResponse struct {
	Item *ShopItem `json:"item"`
}

type GetShopItemsRequest struct{}

type GetShopItemsResponse struct {
	Items []ShopItem `json:"items"`
}

type PurchaseRequest struct {
	ShopItemID string `json:"shop_item_id"`
}

type PurchaseResponse struct {
	Purchase Purchase `json:"purchase"`
}

type GetMyPurchasesRequest struct{}

type GetMyPurchasesResponse struct {
	Purchases []Purchase `json:"purchases"`
}

type RedeemPurchaseRequest struct {
	ID string `json:"id"`
}

type RedeemPurchaseResponse struct {
	Purchase Purchase `json:"purchase"`
}
