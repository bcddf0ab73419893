package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"smash-signup/internal/service"
	"smash-signup/internal/timerule"
	"smash-signup/pkg/response"
)

// TimerHandler 时间规则模块 HTTP 处理器（只读查询，无需鉴权）
type TimerHandler struct {
	timerSvc service.TimerService
}

// NewTimerHandler 创建 TimerHandler
func NewTimerHandler(timerSvc service.TimerService) *TimerHandler {
	return &TimerHandler{timerSvc: timerSvc}
}

// GetSystemInfo 运营信息（周次计数 + 全部通道状态 + 名单标题）
// GET /api/v1/system/info
func (h *TimerHandler) GetSystemInfo(c *gin.Context) {
	result, err := h.timerSvc.GetSystemInfo(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetLaneStates 五条通道的阶段快照
// GET /api/v1/lanes
func (h *TimerHandler) GetLaneStates(c *gin.Context) {
	result, err := h.timerSvc.GetAllLaneStates(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetLaneState 单条通道的阶段
// GET /api/v1/lanes/:lane_id
func (h *TimerHandler) GetLaneState(c *gin.Context) {
	result, err := h.timerSvc.GetLaneState(c.Request.Context(), c.Param("lane_id"))
	if err != nil {
		if errors.Is(err, timerule.ErrUnknownLane) {
			response.NotFound(c, 13001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
