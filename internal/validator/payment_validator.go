package validator

import (
	"errors"
	"regexp"
	"strconv"

	"app/internal/domain/model"
)

var (
	// 支払い方法の形式が不正
	ErrInvalidPaymentDetails = errors.New("invalid payment details")
)

var (
	//カード番号は数字16桁ちょうど
	cardNumberRe = regexp.MustCompile(`^[0-9]{16}$`)

	//月・年は2桁
	twoDigitsRe = regexp.MustCompile(`^[0-9]{2}$`)

	//UPIは localpart@handle 形式
	upiRe = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}$`)
)

// チェックアウト時に受け取る支払い情報。
// 形式チェックのみで、決済ネットワークへのオーソリは行わない。
type PaymentDetails struct {
	CardNumber   string `json:"card_number"`
	CardExpMonth string `json:"card_exp_month"`
	CardExpYear  string `json:"card_exp_year"`
	UpiID        string `json:"upi_id"`
}

type PaymentValidator struct {
	//カード有効期限（下2桁）の許容範囲
	minExpYear int
	maxExpYear int
}

// DI
func NewPaymentValidator(minExpYear, maxExpYear int) *PaymentValidator {
	return &PaymentValidator{minExpYear: minExpYear, maxExpYear: maxExpYear}
}

// Validate は支払い方法ごとの形式チェックを行う。
func (v *PaymentValidator) Validate(method model.PaymentMethod, d PaymentDetails) error {
	switch method {
	case model.PaymentMethodCard:
		return v.validateCard(d)
	case model.PaymentMethodUPI:
		return v.validateUPI(d)
	case model.PaymentMethodCashOnDelivery:
		//追加項目なし
		return nil
	default:
		return ErrInvalidPaymentDetails
	}
}

func (v *PaymentValidator) validateCard(d PaymentDetails) error {
	if !cardNumberRe.MatchString(d.CardNumber) {
		return ErrInvalidPaymentDetails
	}

	if !twoDigitsRe.MatchString(d.CardExpMonth) {
		return ErrInvalidPaymentDetails
	}
	month, _ := strconv.Atoi(d.CardExpMonth)
	if month < 1 || month > 12 {
		return ErrInvalidPaymentDetails
	}

	if !twoDigitsRe.MatchString(d.CardExpYear) {
		return ErrInvalidPaymentDetails
	}
	year, _ := strconv.Atoi(d.CardExpYear)
	if year < v.minExpYear || year > v.maxExpYear {
		return ErrInvalidPaymentDetails
	}

	return nil
}

func (v *PaymentValidator) validateUPI(d PaymentDetails) error {
	if !upiRe.MatchString(d.UpiID) {
		return ErrInvalidPaymentDetails
	}
	return nil
}
