package core

import "github.com/golang-jwt/jwt/v4"

// Claims 由前端登入流程簽發，vk_user_id 即 Profile.userId
type Claims struct {
	VKUserID int64 `json:"vk_user_id"`
	jwt.RegisteredClaims
}

// ContextUserIDKey auth middleware 放入 gin.Context 的 VK user id（int64）
const ContextUserIDKey = "userId"
