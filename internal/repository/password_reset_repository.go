package repository

import (
	"context"
	"time"

	"courseapp/internal/domain/model"
)

type PasswordResetRepository interface {
	Create(ctx context.Context, reset *model.PasswordReset) error
	FindByHash(ctx context.Context, tokenHash string) (model.PasswordReset, bool, error)
	MarkUsed(ctx context.Context, resetID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
