package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCard           PaymentMethod = "card"
	PaymentMethodUPI            PaymentMethod = "upi"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// 注文時点の住所コピー。
// 以後に住所が編集されても注文側は変わらない（参照ではなくコピー）。
type ShippingAddress struct {
	Country     string `gorm:"type:varchar(100);not null" json:"country"`
	FullName    string `gorm:"type:varchar(255);not null" json:"full_name"`
	PhoneNumber string `gorm:"type:varchar(30);not null" json:"phone_number"`
	Pincode     string `gorm:"type:varchar(20);not null" json:"pincode"`
	Area        string `gorm:"type:varchar(255);not null" json:"area"`
	Landmark    string `gorm:"type:varchar(255);not null" json:"landmark"`
}

// 注文はカート明細1件につき1行（複数明細をまとめるヘッダは無い）。
// 作成後は削除（キャンセル）以外変更しない。
type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64           `gorm:"not null;index" json:"user_id"`
	ProductName string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_orders_idem_product" json:"product_name"`
	Category    string          `gorm:"type:varchar(100);not null" json:"category"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	ImageURL    string          `gorm:"type:text" json:"image_url"`

	Shipping ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`

	//配送予定日（作成時に now + リードタイム で確定）
	TargetDeliveryDate time.Time     `gorm:"not null" json:"target_delivery_date"`
	PaymentMethod      PaymentMethod `gorm:"type:varchar(30);not null" json:"payment_method"`

	//二重チェックアウト防止キー。同一バッチの行は同じキーを共有する。
	//商品名はユーザーのカート内で一意なので (key, product_name) で衝突しない。
	IdempotencyKey string `gorm:"type:varchar(255);not null;index;uniqueIndex:idx_orders_idem_product" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
