package repository

import "errors"

var (
	//対象が存在しない
	ErrNotFound = errors.New("not found")

	//一意制約に衝突した（カートの同一商品など）
	ErrConflict = errors.New("conflict")
)
