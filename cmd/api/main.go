package main

import (
	"time"

	"courseapp/internal/config"
	"courseapp/internal/domain/model"
	"courseapp/internal/handler"
	"courseapp/internal/infra/db"
	"courseapp/internal/infra/mail"
	"courseapp/internal/infra/ratelimit"
	infraRepo "courseapp/internal/infra/repository"
	"courseapp/internal/middleware"
	"courseapp/internal/server"
	"courseapp/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

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
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(userID string, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
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
		&model.Course{},
		&model.CourseSection{},
		&model.Comment{},
		&model.Enrollment{},
		&model.SkuMapping{},
		&model.WooOrder{},
		&model.WooOrderItem{},
		&model.PasswordReset{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	courseRepo := infraRepo.NewCourseGormRepository(gormDB)
	sectionRepo := infraRepo.NewSectionGormRepository(gormDB)
	commentRepo := infraRepo.NewCommentGormRepository(gormDB)
	enrollmentRepo := infraRepo.NewEnrollmentGormRepository(gormDB)
	mappingRepo := infraRepo.NewSkuMappingGormRepository(gormDB)
	resetRepo := infraRepo.NewPasswordResetGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	logger := log.New("courseapp")

	//bcrypt（作成：Hash / ログイン：Verify）
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := newJWTIssuer(cfg.JWTSecret)

	//メール（Resend）
	mailer := mail.NewResendClient(cfg.ResendAPIKey, cfg.MailFrom, cfg.AppURL)

	//レート制限カウンタ。REDIS_ADDRがあればRedis、無ければインメモリ。
	var rlStore middleware.CounterStore
	if cfg.RedisAddr != "" {
		rlStore = ratelimit.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	} else {
		memStore := ratelimit.NewMemoryStore()
		go func() {
			t := time.NewTicker(5 * time.Minute)
			defer t.Stop()
			for range t.C {
				memStore.Sweep()
			}
		}()
		rlStore = memStore
	}

	//Usecase生成
	provisioner := usecase.NewAccountProvisioner(hasher, idGen, clock)
	authUC := usecase.NewAuthUsecase(userRepo, resetRepo, verifier, hasher, issuer, mailer, idGen, clock, logger, cfg.AppURL+"/set-new-password")
	courseUC := usecase.NewCourseUsecase(courseRepo, sectionRepo, enrollmentRepo, auditRepo, idGen, clock)
	commentUC := usecase.NewCommentUsecase(commentRepo, userRepo, idGen, clock)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo, enrollmentRepo, auditRepo, hasher, idGen, clock)
	mappingUC := usecase.NewSkuMappingUsecase(mappingRepo, courseRepo, auditRepo, idGen, clock)
	ingestUC := usecase.NewOrderIngestionUsecase(txManager, provisioner, mailer, idGen, clock, logger)

	//Handler生成
	authH := handler.NewAuthHandler(authUC)
	courseH := handler.NewCourseHandler(cfg, courseUC)
	commentH := handler.NewCommentHandler(cfg, commentUC)
	adminCourseH := handler.NewAdminCourseHandler(cfg, courseUC, userRepo)
	adminUserH := handler.NewAdminUserHandler(cfg, adminUserUC, userRepo)
	adminMappingH := handler.NewAdminMappingHandler(cfg, mappingUC, userRepo)
	webhookH := handler.NewWebhookHandler(cfg, ingestUC)

	//Server起動
	e := server.New(cfg, rlStore,
		authH,
		courseH,
		commentH,
		adminCourseH,
		adminUserH,
		adminMappingH,
		webhookH,
	)

	if err := server.Start(e, cfg.Port); err != nil {
		panic(err)
	}
}
