package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//ユーザーの注文履歴（挿入順）
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)

	//チェックアウト1回分をまとめて作成し、採番したIDを返す
	CreateBatch(ctx context.Context, orders []model.Order) ([]int64, error)

	//注文の削除（キャンセル）
	DeleteByID(ctx context.Context, orderID int64) error

	//検索（同じキーなら同じ結果を返す）
	ListByIdempotencyKey(ctx context.Context, userID int64, key string) ([]model.Order, error)

	//管理者用の注文一覧（更新が新しい順）
	ListAdmin(ctx context.Context, page int, limit int) ([]model.Order, int64, error)
}
