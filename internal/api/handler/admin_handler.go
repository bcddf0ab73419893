package handler

import (
	"errors"
	"net/url"

	"github.com/gin-gonic/gin"

	"smash-signup/internal/dto"
	"smash-signup/internal/service"
	"smash-signup/internal/timerule"
	"smash-signup/pkg/response"
)

// AdminHandler 管理模块 HTTP 处理器
// 覆盖边界调整、名册导入、名单导出、代报名与每周翻转等干事操作
type AdminHandler struct {
	svc *service.Service
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(svc *service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ── 边界覆盖 ──

// SetOverride 写入单个边界覆盖
// PUT /api/v1/admin/overrides
func (h *AdminHandler) SetOverride(c *gin.Context) {
	var req dto.SetOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	err := h.svc.Timer.SetOverride(c.Request.Context(), req.LaneID, timerule.Boundary(req.Boundary), req.At)
	if err != nil {
		var verr *timerule.ValidationError
		if errors.As(err, &verr) {
			response.ErrorWithDetails(c, 422, 14001, "边界覆盖被拒绝", verr.Error())
			return
		}
		if errors.Is(err, timerule.ErrUnknownLane) || errors.Is(err, timerule.ErrUnknownBoundary) {
			response.BadRequest(c, 14002, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// ClearOverrides 清空全部边界覆盖
// DELETE /api/v1/admin/overrides
func (h *AdminHandler) ClearOverrides(c *gin.Context) {
	if err := h.svc.Timer.ClearAllOverrides(c.Request.Context()); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ── 周次管理 ──

// ResetSemester 开学重置：周次归 1，清空覆盖
// POST /api/v1/admin/semester/reset
func (h *AdminHandler) ResetSemester(c *gin.Context) {
	var req dto.ResetSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.svc.Timer.ResetSemester(c.Request.Context(), req.Year, req.Semester)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// IncrementWeek 手动周次 +1（翻转作业失败时的补救入口），同时清空覆盖
// POST /api/v1/admin/week/increment
func (h *AdminHandler) IncrementWeek(c *gin.Context) {
	result, err := h.svc.Timer.IncrementWeek(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// RunRollover 立即执行一次每周翻转（备份 → 清空名单 → 周次 +1）
// POST /api/v1/admin/rollover
func (h *AdminHandler) RunRollover(c *gin.Context) {
	path, err := h.svc.Rollover.Rollover(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"backup": path})
}

// ── 名册与名单 ──

// ImportMembers 导入社员名册（multipart 字段 file，xlsx）
// POST /api/v1/admin/members/import
func (h *AdminHandler) ImportMembers(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "缺少名册文件")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 15001, "名册文件无法读取")
		return
	}
	defer f.Close()

	result, err := h.svc.Member.ImportRoster(c.Request.Context(), f)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImportParseFailed),
			errors.Is(err, service.ErrImportNoData),
			errors.Is(err, service.ErrImportTooManyRows),
			errors.Is(err, service.ErrImportBadHeader):
			response.BadRequest(c, 15002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// ExportApplications 下载当前全部报名的 Excel
// GET /api/v1/admin/applications/export
func (h *AdminHandler) ExportApplications(c *gin.Context) {
	buf, filename, err := h.svc.Backup.ExportApplications(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ClearLaneRoster 清空单条通道的名单（调整边界后的善后操作）
// DELETE /api/v1/admin/lanes/:lane_id/roster
func (h *AdminHandler) ClearLaneRoster(c *gin.Context) {
	deleted, err := h.svc.Signup.ClearLaneRoster(c.Request.Context(), c.Param("lane_id"))
	if err != nil {
		if errors.Is(err, timerule.ErrUnknownLane) {
			response.NotFound(c, 13001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"deleted": deleted})
}

// ── 代报名 ──

// ProxyApply 代报名（跳过时间闸门与密码校验）
// POST /api/v1/admin/signup/apply
func (h *AdminHandler) ProxyApply(c *gin.Context) {
	var req dto.ProxyApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.svc.Signup.ProxyApply(c.Request.Context(), &req)
	if err != nil {
		h.writeProxyError(c, err)
		return
	}
	response.Created(c, result)
}

// ProxyCancel 代取消
// POST /api/v1/admin/signup/cancel
func (h *AdminHandler) ProxyCancel(c *gin.Context) {
	var req dto.ProxyCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.svc.Signup.ProxyCancel(c.Request.Context(), &req); err != nil {
		h.writeProxyError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *AdminHandler) writeProxyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, timerule.ErrNoFridayLesson),
		errors.Is(err, timerule.ErrUnknownLane):
		response.BadRequest(c, 12002, err.Error())
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 12006, err.Error())
	case errors.Is(err, service.ErrDuplicateApplication):
		response.Conflict(c, 12004, err.Error())
	case errors.Is(err, service.ErrNoApplication):
		response.NotFound(c, 12005, err.Error())
	default:
		response.InternalError(c)
	}
}
