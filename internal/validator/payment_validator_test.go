package validator_test

import (
	"testing"

	"app/internal/domain/model"
	"app/internal/validator"

	"github.com/stretchr/testify/assert"
)

func newValidator() *validator.PaymentValidator {
	return validator.NewPaymentValidator(24, 50)
}

func TestValidateCard(t *testing.T) {
	tests := []struct {
		name    string
		details validator.PaymentDetails
		wantErr bool
	}{
		{
			name:    "16桁+有効な月年はOK",
			details: validator.PaymentDetails{CardNumber: "1234567890123456", CardExpMonth: "01", CardExpYear: "30"},
			wantErr: false,
		},
		{
			name:    "番号が短い",
			details: validator.PaymentDetails{CardNumber: "123", CardExpMonth: "01", CardExpYear: "30"},
			wantErr: true,
		},
		{
			name:    "番号に数字以外",
			details: validator.PaymentDetails{CardNumber: "1234-5678-9012-345", CardExpMonth: "01", CardExpYear: "30"},
			wantErr: true,
		},
		{
			name:    "月が13",
			details: validator.PaymentDetails{CardNumber: "1234567890123456", CardExpMonth: "13", CardExpYear: "30"},
			wantErr: true,
		},
		{
			name:    "月が00",
			details: validator.PaymentDetails{CardNumber: "1234567890123456", CardExpMonth: "00", CardExpYear: "30"},
			wantErr: true,
		},
		{
			name:    "月が1桁表記",
			details: validator.PaymentDetails{CardNumber: "1234567890123456", CardExpMonth: "1", CardExpYear: "30"},
			wantErr: true,
		},
		{
			name:    "年が許容範囲より前",
			details: validator.PaymentDetails{CardNumber: "1234567890123456", CardExpMonth: "01", CardExpYear: "23"},
			wantErr: true,
		},
		{
			name:    "年が許容範囲より後",
			details: validator.PaymentDetails{CardNumber: "1234567890123456", CardExpMonth: "01", CardExpYear: "51"},
			wantErr: true,
		},
	}

	v := newValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(model.PaymentMethodCard, tt.details)
			if tt.wantErr {
				assert.ErrorIs(t, err, validator.ErrInvalidPaymentDetails)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUPI(t *testing.T) {
	v := newValidator()

	assert.NoError(t, v.Validate(model.PaymentMethodUPI, validator.PaymentDetails{UpiID: "alice@upi"}))
	assert.NoError(t, v.Validate(model.PaymentMethodUPI, validator.PaymentDetails{UpiID: "user.name-01@okbank"}))

	assert.ErrorIs(t, v.Validate(model.PaymentMethodUPI, validator.PaymentDetails{UpiID: "not-an-upi"}), validator.ErrInvalidPaymentDetails)
	assert.ErrorIs(t, v.Validate(model.PaymentMethodUPI, validator.PaymentDetails{UpiID: "a@upi"}), validator.ErrInvalidPaymentDetails)
	assert.ErrorIs(t, v.Validate(model.PaymentMethodUPI, validator.PaymentDetails{UpiID: "alice@upi123"}), validator.ErrInvalidPaymentDetails)
}

func TestValidateCashOnDelivery(t *testing.T) {
	v := newValidator()

	//代引きは追加項目なしで通る
	assert.NoError(t, v.Validate(model.PaymentMethodCashOnDelivery, validator.PaymentDetails{}))
}

func TestValidateUnknownMethod(t *testing.T) {
	v := newValidator()

	assert.ErrorIs(t, v.Validate(model.PaymentMethod("bitcoin"), validator.PaymentDetails{}), validator.ErrInvalidPaymentDetails)
}
