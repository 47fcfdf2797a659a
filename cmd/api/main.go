package main

import (
	"context"
	"crypto/rand"
	"strconv"
	"time"

	"partstock/internal/config"
	"partstock/internal/domain/model"
	"partstock/internal/handler"
	"partstock/internal/infra/db"
	infraRepo "partstock/internal/infra/repository"
	"partstock/internal/server"
	"partstock/internal/usecase"
	"partstock/internal/validator"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// 一括操作をまとめるID
type uuidBatchIDGenerator struct{}

func (g *uuidBatchIDGenerator) NewBatchID() string {
	return uuid.NewString()
}

// 部品の外部ID（英小文字+数字で35桁）
const externalIDCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

type externalIDGenerator struct{}

func (g *externalIDGenerator) NewExternalID() string {
	b := make([]byte, 35)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	for i := range b {
		b[i] = externalIDCharset[int(b[i])%len(externalIDCharset)]
	}
	return string(b)
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
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
	//.envは無くてもよい（本番はenv直指定）
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
		&model.Part{},
		&model.OperationLog{},
		&model.User{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	partRepo := infraRepo.NewPartGormRepository(gormDB)
	logRepo := infraRepo.NewOperationLogGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}
	batchIDs := &uuidBatchIDGenerator{}
	externalIDs := &externalIDGenerator{}

	//bcrypt（シード：Hash / ログイン：Verify）
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}

	partValidator := validator.NewPartValidator()

	//Usecase生成
	invUC := usecase.NewInventoryUsecase(txManager, clock, batchIDs)
	partUC := usecase.NewPartUsecase(partRepo, logRepo, txManager, partValidator, clock, externalIDs, batchIDs)
	authUC := usecase.NewAuthUsecase(userRepo, verifier, hasher, issuer, clock)

	//オペレーターを起動時にシード
	if err := authUC.EnsureOperator(context.Background(), cfg.OperatorEmail, cfg.OperatorPassword); err != nil {
		panic(err)
	}

	//Handler生成
	authH := handler.NewAuthHandler(authUC)
	partH := handler.NewPartHandler(partUC)
	invH := handler.NewInventoryHandler(invUC, partUC)

	//Server起動
	e := server.New()
	server.RegisterRoutes(e, cfg, authH, partH, invH)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := e.Start(addr); err != nil {
		panic(err)
	}
}
