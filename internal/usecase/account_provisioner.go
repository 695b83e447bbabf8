package usecase

import (
	"context"
	"strings"

	"courseapp/internal/domain/model"
	repo "courseapp/internal/repository"
)

// 注文取り込み・管理者作成で共通の「emailからアカウントを引き当てる」処理。
type AccountProvisioner struct {
	hasher PasswordHasher
	idGen  IDGenerator
	clock  Clock
}

// DI
func NewAccountProvisioner(hasher PasswordHasher, idGen IDGenerator, clock Clock) *AccountProvisioner {
	return &AccountProvisioner{
		hasher: hasher,
		idGen:  idGen,
		clock:  clock,
	}
}

type ProvisionedAccount struct {
	User model.User

	// 新規作成時のみ入る。保存はせずメール送信にだけ使う。
	PlainPassword string
	Created       bool
}

// NormalizeEmail はtrim+小文字化。アカウントはこのキーで一意。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindOrCreate は正規化emailで既存ユーザーを探し、いなければ
// 生成パスワード付きのSTUDENTを1行で作る（user行とprofile項目は同一INSERT）。
// 既存ユーザーにはパスワードの再生成もメール再送もしない。
func (p *AccountProvisioner) FindOrCreate(ctx context.Context, users repo.UserRepository, email string, firstName string, lastName string) (ProvisionedAccount, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return ProvisionedAccount{}, ErrInvalidEmail
	}

	existing, err := users.FindByEmail(ctx, normalized)
	if err != nil {
		return ProvisionedAccount{}, err
	}
	if existing != nil {
		return ProvisionedAccount{User: *existing, Created: false}, nil
	}

	plain, err := GeneratePassword()
	if err != nil {
		return ProvisionedAccount{}, err
	}

	hashed, err := p.hasher.Hash(plain)
	if err != nil {
		return ProvisionedAccount{}, err
	}

	now := p.clock.Now()
	displayName := strings.TrimSpace(firstName + " " + lastName)

	user := &model.User{
		ID:           p.idGen.NewID(),
		Email:        normalized,
		PasswordHash: hashed,
		Role:         model.RoleStudent,
		DisplayName:  displayName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := users.Create(ctx, user); err != nil {
		return ProvisionedAccount{}, err
	}

	return ProvisionedAccount{
		User:          *user,
		PlainPassword: plain,
		Created:       true,
	}, nil
}
