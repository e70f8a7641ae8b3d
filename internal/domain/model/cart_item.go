package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの明細
// 同じユーザー×同じ商品名は1件まで（数量は持たない。クライアント側の表示のみ）。
type CartItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64           `gorm:"not null;index;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductName string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_cart_user_product" json:"product_name"`
	Category    string          `gorm:"type:varchar(100);not null" json:"category"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	ImageURL    string          `gorm:"type:text" json:"image_url"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
