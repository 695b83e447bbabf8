package repository

import (
	"context"
	"errors"

	"courseapp/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//メール（小文字正規化済み）からユーザーを1件取得する。見つからなければnil。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//管理画面用の一覧
	List(ctx context.Context, page int, limit int) ([]model.User, int64, error)
	// ユーザー情報の更新=>アクティブかどうか・ロールの変更・最後のログイン更新など
	Update(ctx context.Context, user *model.User) error
	//ユーザー削除（enrollmentも一緒に消す）
	Delete(ctx context.Context, userID string) error
}
