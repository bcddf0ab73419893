package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smash-signup/internal/dto"
	"smash-signup/internal/service"
	"smash-signup/internal/timerule"
	"smash-signup/pkg/response"
)

// SignupHandler 报名模块 HTTP 处理器
type SignupHandler struct {
	signupSvc service.SignupService
}

// NewSignupHandler 创建 SignupHandler
func NewSignupHandler(signupSvc service.SignupService) *SignupHandler {
	return &SignupHandler{signupSvc: signupSvc}
}

// Apply 报名
// POST /api/v1/signup/apply
func (h *SignupHandler) Apply(c *gin.Context) {
	var req dto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.signupSvc.Apply(c.Request.Context(), &req)
	if err != nil {
		h.writeSignupError(c, err)
		return
	}

	response.Created(c, result)
}

// Cancel 取消报名
// POST /api/v1/signup/cancel
func (h *SignupHandler) Cancel(c *gin.Context) {
	var req dto.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.signupSvc.Cancel(c.Request.Context(), &req); err != nil {
		h.writeSignupError(c, err)
		return
	}

	response.OK(c, nil)
}

// Roster 单日名单
// GET /api/v1/signup/roster/:day
func (h *SignupHandler) Roster(c *gin.Context) {
	day := c.Param("day")
	if day != string(timerule.DayWednesday) && day != string(timerule.DayFriday) {
		response.BadRequest(c, 10001, "活动日必须为 WED 或 FRI")
		return
	}

	result, err := h.signupSvc.Roster(c.Request.Context(), timerule.Day(day))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// writeSignupError 报名业务错误到 HTTP 响应的统一映射
func (h *SignupHandler) writeSignupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMemberAuthFailed):
		response.Error(c, http.StatusUnauthorized, 12001, err.Error())
	case errors.Is(err, timerule.ErrNoFridayLesson),
		errors.Is(err, timerule.ErrUnknownLane):
		response.BadRequest(c, 12002, err.Error())
	case errors.Is(err, service.ErrSignupNotYetOpen),
		errors.Is(err, service.ErrSignupClosed),
		errors.Is(err, service.ErrCancelClosed):
		response.Forbidden(c, 12003, err.Error())
	case errors.Is(err, service.ErrDuplicateApplication):
		response.Conflict(c, 12004, err.Error())
	case errors.Is(err, service.ErrNoApplication):
		response.NotFound(c, 12005, err.Error())
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 12006, err.Error())
	default:
		response.InternalError(c)
	}
}
