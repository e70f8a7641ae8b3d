package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// 数量という概念は持たない。同じ商品の2回目の追加は409で拒否する。
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
}

func NewCartUsecase(cartItemRepo repo.CartItemRepository) *CartUsecase {
	return &CartUsecase{cartItemRepo: cartItemRepo}
}

type CartItemResponse struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
}

type AddCartInput struct {
	ProductName string
	Category    string
	Price       decimal.Decimal
	ImageURL    string
}

// カート取得（空でもエラーにしない）
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	return u.buildCartResponse(ctx, userID)
}

// カートに追加。重複は加算ではなく409。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductName == "" || in.Category == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid item")
	}
	if in.Price.IsNegative() || in.Price.IsZero() {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}

	_, err := u.cartItemRepo.Create(ctx, model.CartItem{
		UserID:      userID,
		ProductName: in.ProductName,
		Category:    in.Category,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return CartResponse{}, NewHTTPError(http.StatusConflict, "already in cart")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

// 明細削除。先に所有を確認してから消す。
func (u *CartUsecase) DeleteCartItem(ctx context.Context, userID int64, cartItemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		//他人の明細は「存在しない扱い」にする
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

type ClearCartResponse struct {
	Deleted int64 `json:"deleted"`
}

// カートを空にする。既に空でも成功（deleted=0）。
func (u *CartUsecase) ClearCart(ctx context.Context, userID int64) (ClearCartResponse, error) {
	if userID <= 0 {
		return ClearCartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	n, err := u.cartItemRepo.ClearByUserID(ctx, userID)
	if err != nil {
		return ClearCartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ClearCartResponse{Deleted: n}, nil
}

func (u *CartUsecase) buildCartResponse(ctx context.Context, userID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	for _, it := range items {
		respItems = append(respItems, CartItemResponse{
			ID:          it.ID,
			UserID:      it.UserID,
			ProductName: it.ProductName,
			Category:    it.Category,
			Price:       it.Price,
			ImageURL:    it.ImageURL,
		})
	}

	return CartResponse{Items: respItems}, nil
}
