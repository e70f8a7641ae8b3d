package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/validator"

	"github.com/shopspring/decimal"
)

// CheckoutUsecase はカートを注文に変換する唯一の複数ストア操作。
// 前提チェックがすべて通ってから書き込みを始め、
// 注文行の作成とカートのクリアは同一トランザクションでコミットする。
type CheckoutUsecase struct {
	tx        repo.TransactionManager
	addresses repo.AddressRepository
	payments  *validator.PaymentValidator

	//注文から配送予定日までのリードタイム
	leadTime time.Duration
}

// DI
func NewCheckoutUsecase(
	tx repo.TransactionManager,
	addresses repo.AddressRepository,
	payments *validator.PaymentValidator,
	leadTime time.Duration,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:        tx,
		addresses: addresses,
		payments:  payments,
		leadTime:  leadTime,
	}
}

// チェックアウト対象のカート明細（リクエストで受けるスナップショット）
type CheckoutItemInput struct {
	UserID      int64           `json:"user_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
}

type PlaceOrderInput struct {
	Items          []CheckoutItemInput
	AddressID      int64
	PaymentMethod  model.PaymentMethod
	Payment        validator.PaymentDetails
	IdempotencyKey string
}

type PlaceOrderOutput struct {
	OrderIDs []int64 `json:"order_ids"`
}

// PlaceOrder はチェックアウト本体。
// 前提チェックの順番:
//  1. 認証済みユーザーであること
//  2. 住所が選択されていること（address_id必須）
//  3. 明細が1件以上あり、すべて本人のものであること
//  4. 住所が実在し本人のものであること（他人の住所は404）
//  5. 支払い方法が形式として正しいこと
//
// ここまで一切書き込みをしない。効果はトランザクションで一括。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if userID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" || len(key) > 255 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	//住所未選択では支払い方法の検証にも進まない
	if in.AddressID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "address not selected")
	}

	if len(in.Items) == 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	for _, it := range in.Items {
		if it.UserID != userID {
			return PlaceOrderOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
		}
		if it.ProductName == "" {
			return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid item")
		}
	}

	//address_idの存在確認＋所有チェック。
	//他人の住所でのチェックアウトを防ぐため、所有外も404にする。
	addr, err := u.addresses.FindByID(ctx, in.AddressID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return PlaceOrderOutput{}, NewHTTPError(http.StatusNotFound, "address not found")
		}
		return PlaceOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if addr.UserID != userID {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusNotFound, "address not found")
	}

	//形式チェックのみ。決済ネットワークには繋がない。
	if err := u.payments.Validate(in.PaymentMethod, in.Payment); err != nil {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment details")
	}

	//住所スナップショット。以後の住所編集は過去の注文に影響しない。
	snapshot := model.ShippingAddress{
		Country:     addr.Country,
		FullName:    addr.FullName,
		PhoneNumber: addr.PhoneNumber,
		Pincode:     addr.Pincode,
		Area:        addr.Area,
		Landmark:    addr.Landmark,
	}

	var out PlaceOrderOutput

	//注文処理はトランザクション
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら同じ結果を返す（二重チェックアウト防止）
		existing, err := r.Orders().ListByIdempotencyKey(ctx, userID, key)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(existing) > 0 {
			out = PlaceOrderOutput{OrderIDs: orderIDs(existing)}
			return nil
		}

		now := time.Now()
		targetDate := now.Add(u.leadTime)

		//カート明細1件につき注文1行。バッチ内は同じ予定日・同じスナップショット。
		orders := make([]model.Order, 0, len(in.Items))
		for _, it := range in.Items {
			orders = append(orders, model.Order{
				UserID:             userID,
				ProductName:        it.ProductName,
				Category:           it.Category,
				Price:              it.Price,
				ImageURL:           it.ImageURL,
				Shipping:           snapshot,
				TargetDeliveryDate: targetDate,
				PaymentMethod:      in.PaymentMethod,
				IdempotencyKey:     key,
				CreatedAt:          now,
				UpdatedAt:          now,
			})
		}

		ids, err := r.Orders().CreateBatch(ctx, orders)
		if err != nil {
			//一意制約違反はトランザクションごとabortさせ、外で引き直す
			if errors.Is(err, repo.ErrConflict) {
				return repo.ErrConflict
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートのクリアも同じトランザクション。
		//失敗したらロールバックされ、注文だけ残ることはない。
		if _, err := r.CartItems().ClearByUserID(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = PlaceOrderOutput{OrderIDs: ids}
		return nil
	})

	//競合（同時に同じキーが入った等）はabort済みのトランザクションでは
	//クエリできないので、新しいトランザクションで引き直して同じ結果を返す
	if errors.Is(err, repo.ErrConflict) {
		var existing []model.Order
		qerr := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			var err error
			existing, err = r.Orders().ListByIdempotencyKey(ctx, userID, key)
			return err
		})
		if qerr == nil && len(existing) > 0 {
			return PlaceOrderOutput{OrderIDs: orderIDs(existing)}, nil
		}
		return PlaceOrderOutput{}, NewHTTPError(http.StatusConflict, "idempotency conflict")
	}

	if err != nil {
		return PlaceOrderOutput{}, err
	}
	return out, nil
}

func orderIDs(orders []model.Order) []int64 {
	ids := make([]int64, 0, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].ID)
	}
	return ids
}
