package model

// リクエストごとに呼び出し側から明示的に渡す認証済みユーザー。
// グローバルなセッション参照はしない。
type Principal struct {
	UserID int64
	Role   Role
}

// 未認証（ゼロ値）かどうか。
func (p Principal) IsAnonymous() bool {
	return p.UserID <= 0
}
