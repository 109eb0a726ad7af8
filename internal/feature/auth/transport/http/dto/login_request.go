package dto

// LoginReq は/auth/loginエンドポイントのリクエストボディを表します。
// 必須チェックはユースケース側で行い、エラーメッセージを統一します。
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
