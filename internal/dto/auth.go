package dto

// AdminLoginRequest 管理员登录（共享密钥换发 JWT）
type AdminLoginRequest struct {
	MasterKey string `json:"master_key" binding:"required"`
}

// TokenResponse 令牌响应
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // access token 有效期（秒）
}
