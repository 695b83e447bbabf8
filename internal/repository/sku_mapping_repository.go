package repository

import (
	"context"

	"courseapp/internal/domain/model"
)

type SkuMappingRepository interface {
	Create(ctx context.Context, mapping *model.SkuMapping) error
	FindByID(ctx context.Context, mappingID string) (model.SkuMapping, error)
	//取り込み時に使う。is_active=trueの行だけ。見つからなければfound=false。
	FindActiveBySku(ctx context.Context, sku string) (model.SkuMapping, bool, error)
	List(ctx context.Context) ([]model.SkuMapping, error)
	Update(ctx context.Context, mapping *model.SkuMapping) error
	Delete(ctx context.Context, mappingID string) error
}
