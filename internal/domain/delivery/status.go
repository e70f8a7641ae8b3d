package delivery

import "time"

// 配送ステータスは保存しない。
// targetDeliveryDate と現在時刻から毎回計算する純関数のみを置く。

type State string

const (
	StateOrdered        State = "ordered"
	StateProcessing     State = "processing"
	StateOutForDelivery State = "out-for-delivery"
	StateDelivered      State = "delivered"
)

// デフォルト設定（configで上書き可能）
const (
	DefaultLeadDays    = 2
	DefaultCutoverHour = 21
)

// StateAt は配送予定日と現在時刻からステータスを導出する。
//   - 当日: cutoverHour時前なら out-for-delivery、以後は delivered
//   - 前日0時以降〜当日前: processing
//   - それ以前: ordered
//   - 予定日を過ぎたら常に delivered（「遅延」状態は持たない）
func StateAt(target time.Time, now time.Time, cutoverHour int) State {
	d0 := dateOnly(target.In(now.Location()))
	today := dateOnly(now)

	switch {
	case today.Equal(d0):
		if now.Hour() >= cutoverHour {
			return StateDelivered
		}
		return StateOutForDelivery

	case today.Before(d0):
		//前日0時を境に processing へ
		oneDayBefore := d0.AddDate(0, 0, -1)
		if !today.Before(oneDayBefore) {
			return StateProcessing
		}
		return StateOrdered

	default:
		return StateDelivered
	}
}

// 4段階プログレス表示用の日付。
// 予定日から逆算するだけで、保存されたタイムスタンプではない。
type Steps struct {
	Ordered        time.Time `json:"ordered"`
	Processing     time.Time `json:"processing"`
	OutForDelivery time.Time `json:"out_for_delivery"`
	Delivered      time.Time `json:"delivered"`
}

func StepsFor(target time.Time) Steps {
	d0 := dateOnly(target)
	return Steps{
		Ordered:        d0.AddDate(0, 0, -2),
		Processing:     d0.AddDate(0, 0, -1),
		OutForDelivery: d0,
		Delivered:      d0,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
