package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 表示用の通貨フォーマッタ。
// 注文レコードには入らない（あくまで表示のための協力者）。
type CurrencyFormatter struct {
	unit    currency.Unit
	printer *message.Printer
}

func NewCurrencyFormatter(locale string, code string) (*CurrencyFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, err
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, err
	}

	return &CurrencyFormatter{
		unit:    unit,
		printer: message.NewPrinter(tag),
	}, nil
}

// Format は価格をロケールに合わせた通貨表記にする。
func (f *CurrencyFormatter) Format(price decimal.Decimal) string {
	amount, _ := price.Float64()
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(amount)))
}
