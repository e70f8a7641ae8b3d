package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartItemRepository interface {
	// 同一 (userID, productName) が既にあれば ErrConflict（数量加算はしない）
	Create(ctx context.Context, item model.CartItem) (model.CartItem, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	DeleteByID(ctx context.Context, cartItemID int64) error
	IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error)
	// ユーザーの明細を全削除して件数を返す（空でもエラーにしない）
	ClearByUserID(ctx context.Context, userID int64) (int64, error)
}
