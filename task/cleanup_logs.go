package task

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gitee.com/taoJie_1/support-chat/global"
	"gitee.com/taoJie_1/support-chat/utils"
)

// 清除日志文件
func (m *Manager) CleanUpLogs() error {
	retentionDays := global.Config.LogRetentionDays
	if retentionDays == 0 {
		global.Log.Info("日志清理功能已禁用 (log_retention_days = 0)")
		return nil
	}

	global.Log.Info("开始执行日志清理任务...")

	dirs := map[string]struct{}{
		filepath.Dir(global.Config.RunLogPath): {},
		filepath.Dir(global.Config.GinLogPath): {},
	}
	now := time.Now().In(global.Tz)
	// 当天的零点
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, global.Tz)
	cutoffDate := today.AddDate(0, 0, -int(retentionDays))

	deletedCount := 0
	var errs []string

	for logDir := range dirs {
		n, dirErrs, err := removeLogsBefore(logDir, cutoffDate)
		if err != nil {
			return fmt.Errorf("遍历日志目录 '%s' 失败: %w", logDir, err)
		}
		deletedCount += n
		errs = append(errs, dirErrs...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("日志清理过程中发生错误: %s", strings.Join(errs, "; "))
	}

	global.Log.Infof("日志清理任务完成，共删除 %d 个文件", deletedCount)
	return nil
}

func removeLogsBefore(logDir string, cutoff time.Time) (int, []string, error) {
	deleted := 0
	var errs []string

	err := filepath.WalkDir(logDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		// 从文件名中解析日期, e.g., run.log.2025-10-28
		fileDate, ok := utils.ParseDateFromLogFileName(d.Name(), cutoff.Location())
		if !ok {
			return nil
		}

		if fileDate.Before(cutoff) {
			if err := os.Remove(path); err != nil {
				errMsg := fmt.Sprintf("删除旧日志文件 %s 失败: %v", path, err)
				global.Log.Error(errMsg)
				errs = append(errs, errMsg)
			} else {
				global.Log.Infof("已删除旧日志文件: %s", path)
				deleted++
			}
		}
		return nil
	})
	return deleted, errs, err
}
