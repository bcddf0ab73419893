package handler

import "smash-signup/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth   *AuthHandler
	Signup *SignupHandler
	Timer  *TimerHandler
	Admin  *AdminHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(svc.Auth),
		Signup: NewSignupHandler(svc.Signup),
		Timer:  NewTimerHandler(svc.Timer),
		Admin:  NewAdminHandler(svc),
	}
}
