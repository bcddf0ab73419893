package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"smash-signup/config"
	"smash-signup/internal/model"
	"smash-signup/internal/repository"
	"smash-signup/internal/timerule"
	"smash-signup/pkg/clock"
)

// ── 备份模块业务错误 ──

var (
	ErrBackupGenerateFail = errors.New("生成备份文件失败")
	ErrBackupWriteFail    = errors.New("写入备份文件失败")
)

// BackupService 报名备份业务接口
//
// 设计说明：
//   - 每周翻转前将全部报名记录导出为 Excel (.xlsx)，按通道分 Sheet
//   - WriteBackup 落盘到配置的备份目录（翻转作业调用）
//   - ExportApplications 以 bytes.Buffer 返回（管理员下载接口调用）
type BackupService interface {
	// ExportApplications 导出当前全部报名为 Excel
	ExportApplications(ctx context.Context) (*bytes.Buffer, string, error)
	// WriteBackup 导出并写入备份目录，返回文件路径
	WriteBackup(ctx context.Context) (string, error)
}

type backupService struct {
	cfg    *config.Config
	repo   *repository.Repository
	clk    clock.Clock
	logger *zap.Logger
}

// NewBackupService 创建 BackupService 实例
func NewBackupService(cfg *config.Config, repo *repository.Repository, clk clock.Clock, logger *zap.Logger) BackupService {
	return &backupService{cfg: cfg, repo: repo, clk: clk, logger: logger}
}

func (s *backupService) ExportApplications(ctx context.Context) (*bytes.Buffer, string, error) {
	apps, err := s.repo.Application.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询报名记录失败", zap.Error(err))
		return nil, "", err
	}

	cfgRow, err := s.repo.SystemConfig.Get(ctx)
	week := 0
	if err != nil {
		s.logger.Warn("读取系统配置失败，备份文件名省略周次", zap.Error(err))
	} else {
		week = cfgRow.Week
	}

	// 按通道分组，保持固定通道顺序
	byLane := make(map[string][]model.Application)
	for _, app := range apps {
		key := app.Day + ":" + app.Category
		byLane[key] = append(byLane[key], app)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for _, lane := range timerule.Lanes() {
		sheetName := lane.Name
		idx, err := f.NewSheet(sheetName)
		if err != nil {
			s.logger.Error("创建 Sheet 失败", zap.String("sheet", sheetName), zap.Error(err))
			return nil, "", ErrBackupGenerateFail
		}
		if lane.ID == "WED_EXERCISE" {
			f.SetActiveSheet(idx)
		}

		f.SetColWidth(sheetName, "A", "A", 6)
		f.SetColWidth(sheetName, "B", "C", 14)
		f.SetColWidth(sheetName, "D", "E", 18)

		f.SetCellValue(sheetName, "A1", "序号")
		f.SetCellValue(sheetName, "B1", "学号")
		f.SetCellValue(sheetName, "C1", "姓名")
		f.SetCellValue(sheetName, "D1", "来宾姓名")
		f.SetCellValue(sheetName, "E1", "报名时间")
		f.SetCellStyle(sheetName, "A1", "E1", headerStyle)

		row := 2
		for i, app := range byLane[string(lane.Day)+":"+string(lane.Category)] {
			name := ""
			if app.Member != nil {
				name = app.Member.Name
			}
			guest := "-"
			if app.GuestName != nil {
				guest = *app.GuestName
			}
			f.SetCellValue(sheetName, cellRef("A", row), i+1)
			f.SetCellValue(sheetName, cellRef("B", row), app.StudentID)
			f.SetCellValue(sheetName, cellRef("C", row), name)
			f.SetCellValue(sheetName, cellRef("D", row), guest)
			f.SetCellValue(sheetName, cellRef("E", row), app.CreatedAt.In(s.clk.Location()).Format("2006-01-02 15:04:05"))
			row++
		}
	}
	f.DeleteSheet("Sheet1")

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrBackupGenerateFail
	}

	stamp := s.clk.Now().Format("20060102_150405")
	filename := fmt.Sprintf("报名备份_第%d周_%s.xlsx", week, stamp)
	return buf, filename, nil
}

func (s *backupService) WriteBackup(ctx context.Context) (string, error) {
	buf, filename, err := s.ExportApplications(ctx)
	if err != nil {
		return "", err
	}

	dir := s.cfg.Signup.BackupDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Error("创建备份目录失败", zap.String("dir", dir), zap.Error(err))
		return "", ErrBackupWriteFail
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		s.logger.Error("写入备份文件失败", zap.String("path", path), zap.Error(err))
		return "", ErrBackupWriteFail
	}

	s.logger.Info("报名备份已写入", zap.String("path", path))
	return path, nil
}

// ── 辅助函数 ──

func cellRef(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
