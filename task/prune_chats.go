package task

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"gitee.com/taoJie_1/support-chat/dao"
	"gitee.com/taoJie_1/support-chat/global"
	"golang.org/x/sync/errgroup"
)

const pruneBatchSize = 100

// PruneStaleChats 删除超过保留天数未活跃的会话
func (m *Manager) PruneStaleChats() error {
	retentionDays := global.Config.Ai.ChatRetentionDays
	if retentionDays == 0 {
		global.Log.Info("会话清理功能已禁用 (chat_retention_days = 0)")
		return nil
	}
	if m.lister == nil || m.remover == nil {
		return errors.New("会话存储未初始化[r5pn2c]")
	}

	before := time.Now().AddDate(0, 0, -int(retentionDays)).UnixMilli()
	ctx := context.Background()

	var deleted int64
	for {
		ids, err := m.lister.StaleChatIds(ctx, before, pruneBatchSize)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			break
		}

		var failed int64
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(4)
		for _, id := range ids {
			id := id
			g.Go(func() error {
				err := m.remover.DeleteChat(gCtx, id)
				if err == nil {
					atomic.AddInt64(&deleted, 1)
					return nil
				}
				if errors.Is(err, dao.ErrChatNotFound) {
					return nil
				}
				atomic.AddInt64(&failed, 1)
				global.Log.Warnf("删除过期会话 %s 失败: %v", id, err)
				return nil
			})
		}
		_ = g.Wait()

		// 本批全部失败时停止, 避免反复处理同一批
		if failed == int64(len(ids)) {
			return fmt.Errorf("过期会话删除失败, 共 %d 个", failed)
		}
		if len(ids) < pruneBatchSize {
			break
		}
	}

	global.Log.Infof("会话清理任务完成，共删除 %d 个会话", deleted)
	return nil
}
