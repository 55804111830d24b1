package main

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"quickcart/internal/config"
	"quickcart/internal/domain/model"
	"quickcart/internal/handler"
	"quickcart/internal/infra/db"
	infraRepo "quickcart/internal/infra/repository"
	"quickcart/internal/repository"
	"quickcart/internal/server"
	"quickcart/internal/usecase"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 24 * time.Hour,
	}
}

func (i *jwtIssuer) Issue(user model.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": string(user.Role),
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envが無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := newJWTIssuer(cfg.JWTSecret)

	//初期データ（adminと見本商品）
	if err := seed(context.Background(), cfg, userRepo, productRepo, hasher, clock); err != nil {
		panic(err)
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, hasher, verifier, issuer, clock)
	productUC := usecase.NewProductUsecase(txManager)
	cartUC := usecase.NewCartUsecase(txManager)
	orderUC := usecase.NewOrderUsecase(txManager)
	dashboardUC := usecase.NewDashboardUsecase(txManager)
	statsUC := usecase.NewAdminStatsUsecase(txManager)

	//Handler生成
	handlers := server.RouteHandlers{
		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(productUC),
		Cart:         handler.NewCartHandler(cartUC),
		Order:        handler.NewOrderHandler(orderUC),
		Dashboard:    handler.NewDashboardHandler(dashboardUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		AdminOrder:   handler.NewAdminOrderHandler(orderUC, statsUC),
		AdminCart:    handler.NewAdminCartHandler(cartUC, statsUC),
		AdminStats:   handler.NewAdminStatsHandler(statsUC),
	}

	//Server起動
	e := server.New(cfg, handlers)
	if err := server.Start(e, cfg.Port); err != nil {
		panic(err)
	}
}

// seed は起動時の初期データ投入。
// adminが1人も居なければ設定のadminを作り、商品が空なら見本商品を入れる。
func seed(
	ctx context.Context,
	cfg config.Config,
	users repository.UserRepository,
	products repository.ProductRepository,
	hasher usecase.PasswordHasher,
	clock usecase.Clock,
) error {
	exists, err := users.AdminExists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		hash, err := hasher.Hash(cfg.AdminPassword)
		if err != nil {
			return err
		}
		admin := model.User{
			Name:         "admin",
			Email:        cfg.AdminEmail,
			PasswordHash: hash,
			Role:         model.RoleAdmin,
			CreatedAt:    clock.Now(),
		}
		if err := users.Create(ctx, &admin); err != nil {
			return err
		}
	}

	existing, err := products.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	samples := []model.Product{
		{Name: "iPhone 15 Pro", Category: "Electronics", Price: decimal.RequireFromString("999.99"), Stock: 25, ReorderLevel: 5},
		{Name: "MacBook Pro 14", Category: "Electronics", Price: decimal.RequireFromString("1999.99"), Stock: 10, ReorderLevel: 3},
		{Name: "Fresh Apples 1kg", Category: "Groceries", Price: decimal.RequireFromString("4.99"), Stock: 120, ReorderLevel: 20},
	}
	for _, sample := range samples {
		if _, err := products.Create(ctx, sample); err != nil {
			return err
		}
	}
	return nil
}
