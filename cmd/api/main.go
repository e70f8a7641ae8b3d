package main

import (
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/format"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// アクセストークンの有効期限
const accessTokenTTL = 15 * time.Minute

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		//トークンごとの一意ID（ログ突き合わせ用）
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envはあれば読む（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Address{},
		&model.CartItem{},
		&model.Order{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	issuer := &jwtIssuer{secret: []byte(cfg.JWTSecret), accessTTL: accessTokenTTL}
	authValidator := validator.NewAuthValidator(userRepo)
	paymentValidator := validator.NewPaymentValidator(cfg.CardExpYearMin, cfg.CardExpYearMax)

	priceFormatter, err := format.NewCurrencyFormatter(cfg.CurrencyLocale, cfg.CurrencyCode)
	if err != nil {
		panic(err)
	}

	leadTime := time.Duration(cfg.DeliveryLeadDays) * 24 * time.Hour

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, authValidator, issuer, 12)
	productUC := usecase.NewProductUsecase(productRepo)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	cartUC := usecase.NewCartUsecase(cartItemRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, addressRepo, paymentValidator, leadTime)
	orderUC := usecase.NewOrderUsecase(orderRepo, priceFormatter, cfg.DeliveryCutoverHour)

	//Handler生成
	handlers := server.Handlers{
		Auth:    handler.NewAuthHandler(authUC),
		Product: handler.NewProductHandler(productUC),
		Address: handler.NewAddressHandler(addressUC),
		Cart:    handler.NewCartHandler(cartUC),
		Order:   handler.NewOrderHandler(checkoutUC, orderUC),
	}

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	e := server.New(cfg, handlers)
	if err := server.Start(e, addr); err != nil {
		panic(err)
	}
}
