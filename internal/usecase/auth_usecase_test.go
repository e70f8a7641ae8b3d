package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type authValidatorMock struct{ mock.Mock }

func (m *authValidatorMock) ValidateRegister(ctx context.Context, email, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

func (m *authValidatorMock) ValidateLogin(ctx context.Context, email, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

type tokenIssuerStub struct{}

func (tokenIssuerStub) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	return "stub-token", now.Add(15 * time.Minute), nil
}

func TestRegister_OK(t *testing.T) {
	userRepo := new(UserRepoMock)
	v := new(authValidatorMock)
	uc := usecase.NewAuthUsecase(userRepo, v, tokenIssuerStub{}, bcrypt.MinCost)

	v.On("ValidateRegister", mock.Anything, "alice@example.com", "secret123").Return(nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		//平文は保存しない
		return u.Email == "alice@example.com" && u.PasswordHash != "secret123" && u.Role == model.RoleUser
	})).Return(nil)

	out, err := uc.Register(context.Background(), " alice@example.com ", "secret123")

	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", out.Email)
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	userRepo := new(UserRepoMock)
	v := new(authValidatorMock)
	uc := usecase.NewAuthUsecase(userRepo, v, tokenIssuerStub{}, bcrypt.MinCost)

	//validatorはrepositoryのErrConflictを包んだエラーを返してくる
	v.On("ValidateRegister", mock.Anything, "alice@example.com", "secret123").Return(validator.ErrEmailAlreadyUsed)

	_, err := uc.Register(context.Background(), "alice@example.com", "secret123")

	assert.ErrorIs(t, err, usecase.ErrConflict)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_WrongPasswordIsUnauthorized(t *testing.T) {
	userRepo := new(UserRepoMock)
	v := new(authValidatorMock)
	uc := usecase.NewAuthUsecase(userRepo, v, tokenIssuerStub{}, bcrypt.MinCost)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	assert.NoError(t, err)

	v.On("ValidateLogin", mock.Anything, "alice@example.com", "wrong-password").Return(nil)
	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{
		ID: 1, Email: "alice@example.com", PasswordHash: string(hash), Role: model.RoleUser, IsActive: true,
	}, nil)

	_, err = uc.Login(context.Background(), "alice@example.com", "wrong-password")

	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestLogin_OK(t *testing.T) {
	userRepo := new(UserRepoMock)
	v := new(authValidatorMock)
	uc := usecase.NewAuthUsecase(userRepo, v, tokenIssuerStub{}, bcrypt.MinCost)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	assert.NoError(t, err)

	v.On("ValidateLogin", mock.Anything, "alice@example.com", "secret123").Return(nil)
	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{
		ID: 1, Email: "alice@example.com", PasswordHash: string(hash), Role: model.RoleUser, IsActive: true,
	}, nil)
	userRepo.On("UpdateLastLogin", mock.Anything, int64(1), mock.Anything).Return(nil)

	out, err := uc.Login(context.Background(), "alice@example.com", "secret123")

	assert.NoError(t, err)
	assert.Equal(t, "stub-token", out.AccessToken)
	assert.Equal(t, int64(1), out.User.ID)
}

func TestLogin_UnknownEmailIsUnauthorized(t *testing.T) {
	userRepo := new(UserRepoMock)
	v := new(authValidatorMock)
	uc := usecase.NewAuthUsecase(userRepo, v, tokenIssuerStub{}, bcrypt.MinCost)

	v.On("ValidateLogin", mock.Anything, "nobody@example.com", "secret123").Return(nil)
	//repoは存在しない場合 (nil, nil) を返す
	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return((*model.User)(nil), nil)

	_, err := uc.Login(context.Background(), "nobody@example.com", "secret123")

	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}
