package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"courseapp/internal/domain/model"
	repo "courseapp/internal/repository"
)

var (
	// メールまたはパスワードが違う
	ErrInvalidCredentials = errors.New("invalid credentials")

	// 停止済みユーザー
	ErrUserInactive = errors.New("user inactive")

	// 入力が不正
	ErrInvalidEmail = errors.New("invalid email")

	// 再設定トークンが不正・期限切れ・使用済み
	ErrInvalidResetToken = errors.New("invalid reset token")

	ErrPasswordTooShort = errors.New("password too short")
)

// アクセストークン発行の約束。実装はmain側（HS256 JWT）。
type TokenIssuer interface {
	Issue(userID string, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

type AuthUsecase struct {
	users    repo.UserRepository
	resets   repo.PasswordResetRepository
	verifier PasswordVerifier
	hasher   PasswordHasher
	issuer   TokenIssuer
	mailer   Mailer
	idGen    IDGenerator
	clock    Clock
	logger   Logger

	// 再設定リンクの遷移先（APP_URL + /set-new-password）
	resetRedirectURL string
	resetTTL         time.Duration
}

// DI
func NewAuthUsecase(
	users repo.UserRepository,
	resets repo.PasswordResetRepository,
	verifier PasswordVerifier,
	hasher PasswordHasher,
	issuer TokenIssuer,
	mailer Mailer,
	idGen IDGenerator,
	clock Clock,
	logger Logger,
	resetRedirectURL string,
) *AuthUsecase {
	return &AuthUsecase{
		users:            users,
		resets:           resets,
		verifier:         verifier,
		hasher:           hasher,
		issuer:           issuer,
		mailer:           mailer,
		idGen:            idGen,
		clock:            clock,
		logger:           logger,
		resetRedirectURL: resetRedirectURL,
		resetTTL:         time.Hour,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	User        model.User `json:"user"`
	AccessToken string     `json:"access_token"`
	ExpiresIn   int        `json:"expires_in"`
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return LoginOutput{}, ErrInvalidCredentials
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return LoginOutput{}, err
	}
	if user == nil {
		return LoginOutput{}, ErrInvalidCredentials
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return LoginOutput{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		return LoginOutput{}, ErrUserInactive
	}

	now := u.clock.Now()

	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return LoginOutput{}, err
	}

	//最終ログインを更新（失敗してもログインは通す）
	user.LastLoginAt = &now
	if err := u.users.Update(ctx, user); err != nil {
		u.logger.Warnf("failed to update last_login_at for %s: %v", user.ID, err)
	}

	// 返すときは password hash を空にして漏洩防止
	safeUser := *user
	safeUser.PasswordHash = ""

	return LoginOutput{
		User:        safeUser,
		AccessToken: token,
		ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
	}, nil
}

// RequestPasswordReset はユーザーの有無を外に漏らさない。
// 存在すればトークンを作ってメールでリンクを送る。
func (u *AuthUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return ErrInvalidEmail
	}

	user, err := u.users.FindByEmail(ctx, normalized)
	if err != nil {
		return err
	}
	if user == nil {
		//存在しないことは返さない
		return nil
	}

	plain, err := generateResetToken()
	if err != nil {
		return err
	}

	now := u.clock.Now()
	reset := &model.PasswordReset{
		ID:        u.idGen.NewID(),
		UserID:    user.ID,
		TokenHash: hashResetToken(plain),
		ExpiresAt: now.Add(u.resetTTL),
		CreatedAt: now,
	}
	if err := u.resets.Create(ctx, reset); err != nil {
		return err
	}

	link := u.resetRedirectURL + "?token=" + plain
	if err := u.mailer.SendPasswordResetEmail(ctx, normalized, link); err != nil {
		u.logger.Errorf("password reset email to %s failed: %v", normalized, err)
	}

	return nil
}

type ConfirmPasswordResetInput struct {
	Token       string
	NewPassword string
}

func (u *AuthUsecase) ConfirmPasswordReset(ctx context.Context, in ConfirmPasswordResetInput) error {
	if in.Token == "" {
		return ErrInvalidResetToken
	}
	if len(in.NewPassword) < 8 {
		return ErrPasswordTooShort
	}

	reset, found, err := u.resets.FindByHash(ctx, hashResetToken(in.Token))
	if err != nil {
		return err
	}
	if !found {
		return ErrInvalidResetToken
	}

	now := u.clock.Now()

	// 期限切れ・使用済みは同じエラーで返す
	if reset.UsedAt != nil || now.After(reset.ExpiresAt) {
		return ErrInvalidResetToken
	}

	user, err := u.users.FindByID(ctx, reset.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidResetToken
	}

	hashed, err := u.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashed
	user.UpdatedAt = now
	if err := u.users.Update(ctx, user); err != nil {
		return err
	}

	//1回使ったら無効化
	return u.resets.MarkUsed(ctx, reset.ID)
}

// ランダムなトークンを作る。DBにはsha256だけ残す。
func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
