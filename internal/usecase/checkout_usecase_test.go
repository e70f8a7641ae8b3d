package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const leadTime = 48 * time.Hour

func newCheckoutFixture() (*usecase.CheckoutUsecase, *TxManagerMock, *OrderRepoMock, *CartItemRepoMock, *AddressRepoMock) {
	orderRepo := new(OrderRepoMock)
	cartRepo := new(CartItemRepoMock)
	addressRepo := new(AddressRepoMock)

	tx := &TxManagerMock{Repos: &TxReposMock{
		orders:    orderRepo,
		cartItems: cartRepo,
		addresses: addressRepo,
	}}

	payments := validator.NewPaymentValidator(24, 50)
	uc := usecase.NewCheckoutUsecase(tx, addressRepo, payments, leadTime)
	return uc, tx, orderRepo, cartRepo, addressRepo
}

func testAddress(userID int64) model.Address {
	return model.Address{
		ID:          10,
		UserID:      userID,
		Country:     "India",
		FullName:    "Asha Kumar",
		PhoneNumber: "9876543210",
		Pincode:     "560001",
		Area:        "MG Road",
		Landmark:    "Near metro station",
	}
}

func testItems(userID int64) []usecase.CheckoutItemInput {
	return []usecase.CheckoutItemInput{
		{UserID: userID, ProductName: "Wireless Mouse", Category: "electronics", Price: decimal.RequireFromString("799.00"), ImageURL: "http://img/mouse.png"},
		{UserID: userID, ProductName: "Desk Lamp", Category: "home", Price: decimal.RequireFromString("1299.50"), ImageURL: "http://img/lamp.png"},
	}
}

func codInput(userID int64) usecase.PlaceOrderInput {
	return usecase.PlaceOrderInput{
		Items:          testItems(userID),
		AddressID:      10,
		PaymentMethod:  model.PaymentMethodCashOnDelivery,
		IdempotencyKey: "attempt-001",
	}
}

func TestPlaceOrder_CreatesOneOrderPerItem(t *testing.T) {
	uc, tx, orderRepo, cartRepo, addressRepo := newCheckoutFixture()
	userID := int64(1)
	addr := testAddress(userID)

	addressRepo.On("FindByID", mock.Anything, int64(10)).Return(addr, nil)
	tx.On("WithinTx", mock.Anything).Return(nil)
	orderRepo.On("ListByIdempotencyKey", mock.Anything, userID, "attempt-001").Return([]model.Order{}, nil)

	var captured []model.Order
	orderRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(orders []model.Order) bool {
		captured = orders
		return true
	})).Return([]int64{100, 101}, nil)
	cartRepo.On("ClearByUserID", mock.Anything, userID).Return(int64(2), nil)

	out, err := uc.PlaceOrder(context.Background(), userID, codInput(userID))

	assert.NoError(t, err)
	assert.Equal(t, []int64{100, 101}, out.OrderIDs)

	//明細数と同じだけ注文行ができる
	assert.Len(t, captured, 2)
	for _, o := range captured {
		assert.Equal(t, userID, o.UserID)
		assert.Equal(t, model.PaymentMethodCashOnDelivery, o.PaymentMethod)
		assert.Equal(t, "attempt-001", o.IdempotencyKey)
	}
	assert.Equal(t, "Wireless Mouse", captured[0].ProductName)
	assert.True(t, decimal.RequireFromString("799.00").Equal(captured[0].Price))

	//バッチ内は同じ配送予定日
	assert.True(t, captured[0].TargetDeliveryDate.Equal(captured[1].TargetDeliveryDate))
	assert.InDelta(t, leadTime.Hours(), time.Until(captured[0].TargetDeliveryDate).Hours(), 1.0)

	cartRepo.AssertCalled(t, "ClearByUserID", mock.Anything, userID)
}

func TestPlaceOrder_SnapshotIsACopyOfTheAddress(t *testing.T) {
	uc, tx, orderRepo, cartRepo, addressRepo := newCheckoutFixture()
	userID := int64(1)
	addr := testAddress(userID)

	addressRepo.On("FindByID", mock.Anything, int64(10)).Return(addr, nil)
	tx.On("WithinTx", mock.Anything).Return(nil)
	orderRepo.On("ListByIdempotencyKey", mock.Anything, userID, "attempt-001").Return([]model.Order{}, nil)

	var captured []model.Order
	orderRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(orders []model.Order) bool {
		captured = orders
		return true
	})).Return([]int64{100, 101}, nil)
	cartRepo.On("ClearByUserID", mock.Anything, userID).Return(int64(2), nil)

	_, err := uc.PlaceOrder(context.Background(), userID, codInput(userID))
	assert.NoError(t, err)

	want := model.ShippingAddress{
		Country:     addr.Country,
		FullName:    addr.FullName,
		PhoneNumber: addr.PhoneNumber,
		Pincode:     addr.Pincode,
		Area:        addr.Area,
		Landmark:    addr.Landmark,
	}
	for _, o := range captured {
		assert.Equal(t, want, o.Shipping)
	}

	//後から住所を書き換えても注文側のコピーは変わらない
	addr.Area = "Edited later"
	assert.Equal(t, "MG Road", captured[0].Shipping.Area)
}

func TestPlaceOrder_ForeignAddressIsNotFound(t *testing.T) {
	uc, tx, _, _, addressRepo := newCheckoutFixture()
	userID := int64(1)

	//住所は実在するが別ユーザーのもの
	other := testAddress(99)
	addressRepo.On("FindByID", mock.Anything, int64(10)).Return(other, nil)

	_, err := uc.PlaceOrder(context.Background(), userID, codInput(userID))

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)

	//書き込みには一切進まない
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestPlaceOrder_UnknownAddressIsNotFound(t *testing.T) {
	uc, tx, _, _, addressRepo := newCheckoutFixture()
	userID := int64(1)

	addressRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Address{}, repo.ErrNotFound)

	_, err := uc.PlaceOrder(context.Background(), userID, codInput(userID))

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestPlaceOrder_MissingAddressSelection(t *testing.T) {
	uc, tx, _, _, _ := newCheckoutFixture()
	userID := int64(1)

	in := codInput(userID)
	in.AddressID = 0

	_, err := uc.PlaceOrder(context.Background(), userID, in)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	uc, tx, _, _, _ := newCheckoutFixture()
	userID := int64(1)

	in := codInput(userID)
	in.Items = nil

	_, err := uc.PlaceOrder(context.Background(), userID, in)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestPlaceOrder_ForeignCartItemIsRejected(t *testing.T) {
	uc, tx, _, _, _ := newCheckoutFixture()
	userID := int64(1)

	in := codInput(userID)
	in.Items[1].UserID = 42

	_, err := uc.PlaceOrder(context.Background(), userID, in)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Status)
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestPlaceOrder_InvalidCardIsRejectedBeforeAnyWrite(t *testing.T) {
	uc, tx, _, _, addressRepo := newCheckoutFixture()
	userID := int64(1)

	addressRepo.On("FindByID", mock.Anything, int64(10)).Return(testAddress(userID), nil)

	in := codInput(userID)
	in.PaymentMethod = model.PaymentMethodCard
	in.Payment = validator.PaymentDetails{CardNumber: "123", CardExpMonth: "01", CardExpYear: "30"}

	_, err := uc.PlaceOrder(context.Background(), userID, in)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "invalid payment details", he.Message)
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestPlaceOrder_SameKeyReturnsSameOrders(t *testing.T) {
	uc, tx, orderRepo, cartRepo, addressRepo := newCheckoutFixture()
	userID := int64(1)

	addressRepo.On("FindByID", mock.Anything, int64(10)).Return(testAddress(userID), nil)
	tx.On("WithinTx", mock.Anything).Return(nil)

	//同じキーで既に注文済み
	existing := []model.Order{{ID: 100, UserID: userID}, {ID: 101, UserID: userID}}
	orderRepo.On("ListByIdempotencyKey", mock.Anything, userID, "attempt-001").Return(existing, nil)

	out, err := uc.PlaceOrder(context.Background(), userID, codInput(userID))

	assert.NoError(t, err)
	assert.Equal(t, []int64{100, 101}, out.OrderIDs)
	orderRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	cartRepo.AssertNotCalled(t, "ClearByUserID", mock.Anything, mock.Anything)
}

func TestPlaceOrder_ConcurrentDuplicateReplaysInFreshTx(t *testing.T) {
	uc, tx, orderRepo, cartRepo, addressRepo := newCheckoutFixture()
	userID := int64(1)

	addressRepo.On("FindByID", mock.Anything, int64(10)).Return(testAddress(userID), nil)
	tx.On("WithinTx", mock.Anything).Return(nil)

	//1回目のトランザクション内では未作成に見えるが、INSERTで一意制約に当たる
	orderRepo.On("ListByIdempotencyKey", mock.Anything, userID, "attempt-001").Return([]model.Order{}, nil).Once()
	orderRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil, repo.ErrConflict)

	//abort後の新しいトランザクションで勝った側のバッチが見える
	existing := []model.Order{{ID: 200, UserID: userID}, {ID: 201, UserID: userID}}
	orderRepo.On("ListByIdempotencyKey", mock.Anything, userID, "attempt-001").Return(existing, nil).Once()

	out, err := uc.PlaceOrder(context.Background(), userID, codInput(userID))

	assert.NoError(t, err)
	assert.Equal(t, []int64{200, 201}, out.OrderIDs)
	//引き直しは別トランザクションで行われる
	tx.AssertNumberOfCalls(t, "WithinTx", 2)
	cartRepo.AssertNotCalled(t, "ClearByUserID", mock.Anything, mock.Anything)
}

func TestPlaceOrder_MissingIdempotencyKey(t *testing.T) {
	uc, tx, _, _, _ := newCheckoutFixture()

	in := codInput(1)
	in.IdempotencyKey = ""

	_, err := uc.PlaceOrder(context.Background(), 1, in)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}
