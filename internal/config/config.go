package config

import (
	"fmt"
	"os"
	"strconv"

	"app/internal/domain/delivery"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string // disableなど

	JWTSecret string // JWT署名シークレット

	// 配送まわり。固定値に見えるが設定として持つ。
	DeliveryLeadDays    int // 注文から配送予定日までの日数（2）
	DeliveryCutoverHour int // 当日この時刻以降はdelivered扱い（21）

	// カード有効期限の下2桁の許容範囲（24〜50）
	CardExpYearMin int
	CardExpYearMax int

	// 表示用の通貨フォーマット
	CurrencyLocale string // en-IN など
	CurrencyCode   string // INR など
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := mustAtoi("POSTGRES_PORT")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenvDefault("POSTGRES_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		DeliveryLeadDays:    atoiDefault("DELIVERY_LEAD_DAYS", delivery.DefaultLeadDays),
		DeliveryCutoverHour: atoiDefault("DELIVERY_CUTOVER_HOUR", delivery.DefaultCutoverHour),

		CardExpYearMin: atoiDefault("CARD_EXP_YEAR_MIN", 24),
		CardExpYearMax: atoiDefault("CARD_EXP_YEAR_MAX", 50),

		CurrencyLocale: getenvDefault("CURRENCY_LOCALE", "en-IN"),
		CurrencyCode:   getenvDefault("CURRENCY_CODE", "INR"),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.PostgresUser == "" {
		return Config{}, fmt.Errorf("POSTGRES_USER is required")
	}
	if cfg.PostgresPassword == "" {
		return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if cfg.PostgresDB == "" {
		return Config{}, fmt.Errorf("POSTGRES_DB is required")
	}
	if cfg.PostgresHost == "" {
		return Config{}, fmt.Errorf("POSTGRES_HOST is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DeliveryLeadDays < 0 {
		return Config{}, fmt.Errorf("DELIVERY_LEAD_DAYS must not be negative")
	}
	if cfg.DeliveryCutoverHour < 0 || cfg.DeliveryCutoverHour > 23 {
		return Config{}, fmt.Errorf("DELIVERY_CUTOVER_HOUR must be 0-23")
	}
	if cfg.CardExpYearMin > cfg.CardExpYearMax {
		return Config{}, fmt.Errorf("CARD_EXP_YEAR_MIN must not exceed CARD_EXP_YEAR_MAX")
	}

	return cfg, nil
}

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func getenvDefault(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
