package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"go.uber.org/zap"

	"smash-signup/config"
	"smash-signup/internal/dto"
	"smash-signup/pkg/jwt"
	"smash-signup/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrMasterKeyInvalid = errors.New("管理密钥不正确")
	ErrTokenInvalid     = errors.New("令牌无效或已过期")
)

// AuthService 管理员认证业务接口
// 共享密钥比对通过后换发 JWT，后续管理操作一律走令牌
type AuthService interface {
	// Login 以共享密钥登录，换发访问/刷新令牌
	Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error)
	// Refresh 用刷新令牌换发新令牌
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout 注销：将令牌 ID 加入黑名单直至自然过期
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	cfg    *config.Config
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(cfg *config.Config, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{cfg: cfg, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

func (s *authService) Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error) {
	// 常数时间比对，避免密钥逐字节试探
	if subtle.ConstantTimeCompare([]byte(req.MasterKey), []byte(s.cfg.Auth.MasterKey)) != 1 {
		s.logger.Warn("管理密钥校验失败")
		return nil, ErrMasterKeyInvalid
	}

	return s.issueTokens()
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if claims.TokenType != "refresh" {
		return nil, ErrTokenInvalid
	}

	// 黑名单中的刷新令牌不得续期
	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err == nil && blacklisted {
			return nil, ErrTokenInvalid
		}
	}

	return s.issueTokens()
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		// Redis 不可用时降级：令牌只能等待自然过期
		s.logger.Warn("Redis 不可用，注销降级为等待令牌过期")
		return nil
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

func (s *authService) issueTokens() (*dto.TokenResponse, error) {
	access, err := s.jwtMgr.GenerateAccessToken()
	if err != nil {
		s.logger.Error("签发访问令牌失败", zap.Error(err))
		return nil, err
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken()
	if err != nil {
		s.logger.Error("签发刷新令牌失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.cfg.Auth.AccessTokenTTL.Seconds()),
	}, nil
}
