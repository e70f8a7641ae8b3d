package repository

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// 注文を1件取得
func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).First(&o, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// ユーザーの注文履歴（挿入順）
func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var list []model.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// チェックアウト1回分をまとめて作成。
// 呼び出し側がトランザクション内で使う前提（TxRepos経由）。
func (r *OrderGormRepository) CreateBatch(ctx context.Context, orders []model.Order) ([]int64, error) {
	if len(orders) == 0 {
		return []int64{}, nil
	}

	if err := r.db.WithContext(ctx).Create(&orders).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, repo.ErrConflict
		}
		return nil, err
	}

	ids := make([]int64, 0, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].ID)
	}
	return ids, nil
}

// 注文を削除（キャンセル）
func (r *OrderGormRepository) DeleteByID(ctx context.Context, orderID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Order{}, orderID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 同じキーで作られた注文を返す（無ければ空）
func (r *OrderGormRepository) ListByIdempotencyKey(ctx context.Context, userID int64, key string) ([]model.Order, error) {
	var list []model.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND idempotency_key = ?", userID, key).
		Order("id asc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// 管理者用の全件一覧（更新が新しい順）
func (r *OrderGormRepository) ListAdmin(ctx context.Context, page int, limit int) ([]model.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Order
	if err := r.db.WithContext(ctx).
		Order("updated_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}
