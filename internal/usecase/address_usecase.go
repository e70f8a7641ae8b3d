package usecase

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

// 住所系で存在しないことを表す（Handlerが404に変換する）
var ErrNotFound = errors.New("not found")

type AddressDTO struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Country     string `json:"country"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Pincode     string `json:"pincode"`
	Area        string `json:"area"`
	Landmark    string `json:"landmark"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// 一覧は「見つかったか」フラグ付きで返す
type AddressListResponse struct {
	Found     bool         `json:"found"`
	Addresses []AddressDTO `json:"addresses"`
}

type AddressCreateRequest struct {
	Country     string `json:"country"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Pincode     string `json:"pincode"`
	Area        string `json:"area"`
	Landmark    string `json:"landmark"`
}

type AddressUpdateRequest struct {
	Country     string `json:"country"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Pincode     string `json:"pincode"`
	Area        string `json:"area"`
	Landmark    string `json:"landmark"`
}

type AddressUsecase struct {
	addresses repository.AddressRepository
}

func NewAddressUsecase(addresses repository.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addresses: addresses}
}

func (u *AddressUsecase) List(ctx context.Context, userID int64) (AddressListResponse, error) {
	if userID <= 0 {
		return AddressListResponse{}, ErrUnauthorized
	}

	list, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return AddressListResponse{}, ErrInternal
	}

	out := make([]AddressDTO, 0, len(list))
	for i := range list {
		out = append(out, toAddressDTO(&list[i]))
	}

	//住所なしはエラーではなく found=false
	return AddressListResponse{Found: len(out) > 0, Addresses: out}, nil
}

func (u *AddressUsecase) Create(ctx context.Context, userID int64, req AddressCreateRequest) (AddressDTO, error) {
	if userID <= 0 {
		return AddressDTO{}, ErrUnauthorized
	}

	//入力チェック（全項目必須）
	if req.Country == "" || req.FullName == "" || req.PhoneNumber == "" ||
		req.Pincode == "" || req.Area == "" || req.Landmark == "" {
		return AddressDTO{}, ErrValidation
	}

	now := time.Now()

	a := model.Address{
		UserID:      userID,
		Country:     req.Country,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Pincode:     req.Pincode,
		Area:        req.Area,
		Landmark:    req.Landmark,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := u.addresses.Create(ctx, a)
	if err != nil {
		return AddressDTO{}, ErrInternal
	}

	return toAddressDTO(&created), nil
}

// 更新は (userID, addressID) で対象を特定する。
// userIDだけで特定して先頭を上書きするような曖昧な更新はしない。
func (u *AddressUsecase) Update(ctx context.Context, userID int64, addressID int64, req AddressUpdateRequest) error {
	if userID <= 0 {
		return ErrUnauthorized
	}
	if addressID <= 0 {
		return ErrValidation
	}

	if req.Country == "" || req.FullName == "" || req.PhoneNumber == "" ||
		req.Pincode == "" || req.Area == "" || req.Landmark == "" {
		return ErrValidation
	}

	//所有チェック（本人のみ）
	owned, err := u.addresses.IsOwnedByUser(ctx, addressID, userID)
	if err != nil {
		return ErrInternal
	}
	if !owned {
		//存在しないのか他人のものかは確認してから分ける
		if _, err := u.addresses.FindByID(ctx, addressID); errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return ErrForbidden
	}

	a := model.Address{
		ID:          addressID,
		Country:     req.Country,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Pincode:     req.Pincode,
		Area:        req.Area,
		Landmark:    req.Landmark,
		UpdatedAt:   time.Now(),
	}

	if err := u.addresses.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	return nil
}

func (u *AddressUsecase) Delete(ctx context.Context, userID int64, addressID int64) error {
	if userID <= 0 {
		return ErrUnauthorized
	}
	if addressID <= 0 {
		return ErrValidation
	}

	owned, err := u.addresses.IsOwnedByUser(ctx, addressID, userID)
	if err != nil {
		return ErrInternal
	}
	if !owned {
		if _, err := u.addresses.FindByID(ctx, addressID); errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return ErrForbidden
	}

	if err := u.addresses.Delete(ctx, addressID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	return nil
}

func toAddressDTO(a *model.Address) AddressDTO {
	return AddressDTO{
		ID:          a.ID,
		UserID:      a.UserID,
		Country:     a.Country,
		FullName:    a.FullName,
		PhoneNumber: a.PhoneNumber,
		Pincode:     a.Pincode,
		Area:        a.Area,
		Landmark:    a.Landmark,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   a.UpdatedAt.Format(time.RFC3339),
	}
}
