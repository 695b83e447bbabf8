package repository

import (
	"context"
	"errors"

	"courseapp/internal/domain/model"
)

// woo_order_idのunique index違反。「処理済み」の正規のシグナルとして扱う。
var ErrDuplicateOrder = errors.New("order already processed")

type WooOrderRepository interface {
	// 挿入。同じwoo_order_idが既にあればErrDuplicateOrderを返す。
	// 事前の存在チェックはせず、DBの一意制約に任せる。
	Create(ctx context.Context, order *model.WooOrder) error
	FindByWooOrderID(ctx context.Context, wooOrderID int64) (model.WooOrder, bool, error)
}

type WooOrderItemRepository interface {
	Create(ctx context.Context, item *model.WooOrderItem) error
	ListByOrderID(ctx context.Context, orderID string) ([]model.WooOrderItem, error)
}
