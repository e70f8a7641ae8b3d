package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//401 認証失敗
	ErrUnauthorized = errors.New("unauthorized")
	//403　権限
	ErrForbidden = errors.New("forbidden")
	//競合
	ErrConflict = errors.New("conflict")
	//500
	ErrInternal = errors.New("internal error")
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, email string, password string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

// アクセストークンの発行はmain側で実装を差し込む
type TokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type LoginResult struct {
	AccessToken string  `json:"access_token"`
	ExpiresIn   int     `json:"expires_in"`
	User        UserDTO `json:"user"`
}

type AuthUsecase struct {
	users     repository.UserRepository
	validator AuthValidator
	issuer    TokenIssuer
	cost      int
}

// DI
func NewAuthUsecase(users repository.UserRepository, v AuthValidator, issuer TokenIssuer, bcryptCost int) *AuthUsecase {
	return &AuthUsecase{users: users, validator: v, issuer: issuer, cost: bcryptCost}
}

// 会員登録。email重複は409。
func (u *AuthUsecase) Register(ctx context.Context, email string, password string) (UserDTO, error) {
	email = strings.TrimSpace(email)

	if err := u.validator.ValidateRegister(ctx, email, password); err != nil {
		//email重複だけ409、それ以外は400
		if errors.Is(err, repository.ErrConflict) {
			return UserDTO{}, ErrConflict
		}
		return UserDTO{}, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return UserDTO{}, ErrInternal
	}

	now := time.Now()
	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return UserDTO{}, ErrConflict
		}
		return UserDTO{}, ErrInternal
	}

	return toUserDTO(user), nil
}

// ログイン。成功でアクセストークンを返す。
func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (LoginResult, error) {
	if err := u.validator.ValidateLogin(ctx, email, password); err != nil {
		return LoginResult{}, ErrValidation
	}

	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return LoginResult{}, ErrInternal
	}
	//存在しないかどうかは区別せずunauthorizedにする
	if user == nil || !user.IsActive {
		return LoginResult{}, ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, ErrUnauthorized
	}

	now := time.Now()
	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return LoginResult{}, ErrInternal
	}

	//ログイン時刻の記録は失敗しても致命ではない
	_ = u.users.UpdateLastLogin(ctx, user.ID, now)

	return LoginResult{
		AccessToken: token,
		ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
		User:        toUserDTO(user),
	}, nil
}

// 自分の情報
func (u *AuthUsecase) Me(ctx context.Context, userID int64) (UserDTO, error) {
	if userID <= 0 {
		return UserDTO{}, ErrUnauthorized
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return UserDTO{}, ErrInternal
	}
	if user == nil {
		return UserDTO{}, ErrUnauthorized
	}

	return toUserDTO(user), nil
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		Role:     string(u.Role),
		IsActive: u.IsActive,
	}
}
