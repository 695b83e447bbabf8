package usecase

import "courseapp/internal/domain/model"

// 権限の動詞。増やすときはここに追加してCanにも分岐を書く。
type Verb string

const (
	VerbCommentEdit   Verb = "comment.edit"
	VerbCommentDelete Verb = "comment.delete"
)

// リクエストを実行している本人。
type Actor struct {
	ID   string
	Role model.Role
}

// Can は (actor, verb, 対象の所有者) の1点で権限を判定する。
// 各ハンドラに散らばっていた owner-or-admin チェックはすべてここを通す。
func Can(actor Actor, verb Verb, ownerID string) bool {
	if actor.ID == "" {
		return false
	}

	//ADMINは全部許可
	if actor.Role == model.RoleAdmin {
		return true
	}

	switch verb {
	case VerbCommentEdit, VerbCommentDelete:
		return actor.ID == ownerID
	default:
		return false
	}
}
