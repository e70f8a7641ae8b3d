package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/delivery"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// 表示用の価格フォーマット（ロケール・通貨は協力者側が知っている）
type PriceFormatter interface {
	Format(price decimal.Decimal) string
}

type OrderUsecase struct {
	orders repo.OrderRepository
	prices PriceFormatter

	//delivered扱いに切り替わる時刻（時）
	cutoverHour int
}

// DI
func NewOrderUsecase(orders repo.OrderRepository, prices PriceFormatter, cutoverHour int) *OrderUsecase {
	return &OrderUsecase{orders: orders, prices: prices, cutoverHour: cutoverHour}
}

type OrderOutput struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	// 表示用（注文レコードには保存されない）
	DisplayPrice string `json:"display_price"`
	ImageURL     string `json:"image_url"`

	ShippingAddress model.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                `json:"payment_method"`

	TargetDeliveryDate time.Time `json:"target_delivery_date"`
	//読み取りのたびに時刻から導出する。保存はしない。
	DeliveryStatus string         `json:"delivery_status"`
	DeliverySteps  delivery.Steps `json:"delivery_steps"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// 自分の注文履歴（挿入順）
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.toOutputs(orders, time.Now()), nil
}

// 管理者用の全注文一覧（更新が新しい順）
type AdminOrderListOutput struct {
	Orders []OrderOutput `json:"orders"`
	Total  int64         `json:"total"`
}

func (u *OrderUsecase) ListAllOrders(ctx context.Context, page int, limit int) (AdminOrderListOutput, error) {
	if page < 1 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	orders, total, err := u.orders.ListAdmin(ctx, page, limit)
	if err != nil {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return AdminOrderListOutput{
		Orders: u.toOutputs(orders, time.Now()),
		Total:  total,
	}, nil
}

// 注文の削除（キャンセル）。所有確認してから消す。
func (u *OrderUsecase) DeleteMyOrder(ctx context.Context, userID int64, orderID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.UserID != userID {
		//他人の注文は「存在しない扱い」にする
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.orders.DeleteByID(ctx, orderID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

func (u *OrderUsecase) toOutputs(orders []model.Order, now time.Time) []OrderOutput {
	outs := make([]OrderOutput, 0, len(orders))
	for i := range orders {
		outs = append(outs, u.toOutput(&orders[i], now))
	}
	return outs
}

func (u *OrderUsecase) toOutput(o *model.Order, now time.Time) OrderOutput {
	return OrderOutput{
		ID:              o.ID,
		UserID:          o.UserID,
		ProductName:     o.ProductName,
		Category:        o.Category,
		Price:           o.Price,
		DisplayPrice:    u.prices.Format(o.Price),
		ImageURL:        o.ImageURL,
		ShippingAddress: o.Shipping,
		PaymentMethod:   string(o.PaymentMethod),

		TargetDeliveryDate: o.TargetDeliveryDate,
		DeliveryStatus:     string(delivery.StateAt(o.TargetDeliveryDate, now, u.cutoverHour)),
		DeliverySteps:      delivery.StepsFor(o.TargetDeliveryDate),

		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
