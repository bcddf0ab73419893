package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smash-signup/internal/dto"
	"smash-signup/internal/model"
	"smash-signup/internal/repository"
)

// ── 社员模块业务错误 ──

const maxImportRows = 1000

var (
	ErrImportParseFailed = errors.New("名册文件解析失败")
	ErrImportNoData      = errors.New("名册无数据行（第一行为表头）")
	ErrImportTooManyRows = fmt.Errorf("数据行数超过上限 %d 行", maxImportRows)
	ErrImportBadHeader   = errors.New("名册表头缺少必要列（姓名/学号/初始密码）")
)

// MemberService 社员业务接口
type MemberService interface {
	// Verify 按学号+密码校验社员身份
	Verify(ctx context.Context, studentID, password string) (*model.Member, error)
	// ImportRoster 导入社员名册（xlsx），按学号新建或覆盖
	ImportRoster(ctx context.Context, reader io.Reader) (*dto.ImportMemberResponse, error)
}

type memberService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMemberService 创建 MemberService 实例
func NewMemberService(repo *repository.Repository, logger *zap.Logger) MemberService {
	return &memberService{repo: repo, logger: logger}
}

// ────────────────────── Verify ──────────────────────

func (s *memberService) Verify(ctx context.Context, studentID, password string) (*model.Member, error) {
	m, err := s.repo.Member.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberAuthFailed
		}
		s.logger.Error("查询社员失败", zap.Error(err))
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) != nil {
		return nil, ErrMemberAuthFailed
	}
	return m, nil
}

// ════════════════════════════════════════════════════════════
// ImportRoster — 导入社员名册
// ════════════════════════════════════════════════════════════
//
// 文件格式：xlsx，首个工作表，第一行为表头（姓名 | 学号 | 初始密码）。
// 初始密码以 bcrypt 散列入库；同学号重复导入覆盖姓名与密码。
// 单行失败不中断整体导入，逐行收集错误供管理员核对。

func (s *memberService) ImportRoster(ctx context.Context, reader io.Reader) (*dto.ImportMemberResponse, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		s.logger.Error("打开名册文件失败", zap.Error(err))
		return nil, ErrImportParseFailed
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, ErrImportParseFailed
	}
	if len(rows) < 2 {
		return nil, ErrImportNoData
	}
	if len(rows)-1 > maxImportRows {
		return nil, ErrImportTooManyRows
	}

	// 定位表头列
	nameCol, idCol, pwdCol := -1, -1, -1
	for i, h := range rows[0] {
		switch strings.TrimSpace(h) {
		case "姓名":
			nameCol = i
		case "学号":
			idCol = i
		case "初始密码", "密码":
			pwdCol = i
		}
	}
	if nameCol < 0 || idCol < 0 || pwdCol < 0 {
		return nil, ErrImportBadHeader
	}

	resp := &dto.ImportMemberResponse{}
	for i, row := range rows[1:] {
		rowNum := i + 2 // 表头占第 1 行

		name := cellAt(row, nameCol)
		studentID := cellAt(row, idCol)
		password := cellAt(row, pwdCol)

		if name == "" && studentID == "" {
			continue // 空行跳过
		}
		if name == "" || studentID == "" || password == "" {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportMemberError{Row: rowNum, Reason: "姓名/学号/初始密码不能为空"})
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportMemberError{Row: rowNum, Reason: "密码散列失败"})
			continue
		}

		member := &model.Member{
			StudentID:    studentID,
			Name:         name,
			PasswordHash: string(hash),
		}
		if err := s.repo.Member.Upsert(ctx, member); err != nil {
			s.logger.Error("名册写入失败", zap.Error(err), zap.String("student_id", studentID))
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportMemberError{Row: rowNum, Reason: "写入数据库失败"})
			continue
		}
		resp.Imported++
	}

	s.logger.Info("名册导入完成", zap.Int("imported", resp.Imported), zap.Int("failed", resp.Failed))
	return resp, nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
