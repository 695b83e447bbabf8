package repository

import (
	"context"

	"courseapp/internal/domain/model"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *model.AuditLog) error
	ListByResource(ctx context.Context, resourceType model.AuditResourceType, resourceID string) ([]model.AuditLog, error)
}
