package user

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gitee.com/taoJie_1/support-chat/internal/redis"
	"gitee.com/taoJie_1/support-chat/model/common"
	"gitee.com/taoJie_1/support-chat/model/config"
	"gitee.com/taoJie_1/support-chat/model/db"
	"gitee.com/taoJie_1/support-chat/model/enum"
	"gitee.com/taoJie_1/support-chat/utils"
	"github.com/sirupsen/logrus"
)

// HistoryService 定义了会话历史缓存服务的接口
type HistoryService interface {
	// Get 缓存优先读取会话历史, 数据库为准
	// lastId 为刚写入的消息ID, 缓存未以该消息结尾或顺序异常时视为失效; 为0时不校验
	// 缓存未命中时用分布式锁防止缓存击穿, 然后从数据库回源并写入缓存
	Get(ctx context.Context, chatId string, lastId uint) ([]common.LlmMessage, error)
	// Append 将消息追加到已缓存的历史记录中，并刷新其TTL; 追加失败时删除缓存
	Append(ctx context.Context, chatId string, messages ...common.LlmMessage) error
	// Drop 删除会话的历史缓存
	Drop(ctx context.Context, chatId string) error
}

type historyService struct {
	log   *logrus.Logger
	rdb   redis.Service // 为nil时直接读数据库
	store ChatStore
	cfg   config.Redis
}

// NewHistoryService 创建一个新的 HistoryService 实例
func NewHistoryService(log *logrus.Logger, rdb redis.Service, store ChatStore, cfg config.Redis) HistoryService {
	return &historyService{log: log, rdb: rdb, store: store, cfg: cfg}
}

func (s *historyService) Get(ctx context.Context, chatId string, lastId uint) ([]common.LlmMessage, error) {
	if s.rdb == nil {
		return s.fetch(ctx, chatId)
	}

	// 1. 尝试从Redis获取聊天记录
	if history, ok := s.cached(ctx, chatId, lastId); ok {
		s.log.Debugf("会话 %s 历史记录从Redis缓存命中", chatId)
		return history, nil
	}

	// 2. 使用分布式锁防止缓存击穿
	lockKey := redis.HistoryLockKey(chatId)
	lockExpiry := time.Duration(s.cfg.LockExpiry) * time.Second
	if lockExpiry <= 0 {
		lockExpiry = 5 * time.Second
	}
	agentID, _ := os.Hostname()
	if agentID == "" {
		agentID = "unknown-agent"
	}

	locked, err := s.rdb.SetNX(ctx, lockKey, agentID, lockExpiry).Result()
	if err != nil {
		s.log.Errorf("尝试获取会话 %s 历史记录锁失败: %v", chatId, err)
		// 降级为直接回源
		return s.fetch(ctx, chatId)
	}

	if locked {
		defer func() {
			// 使用后台 context 确保即使原始请求取消，锁释放也能执行
			if err := s.rdb.Del(context.Background(), lockKey).Err(); err != nil {
				s.log.Warnf("释放会话 %s 历史记录锁失败: %v", chatId, err)
			}
		}()
		// 双重检查
		if history, ok := s.cached(ctx, chatId, lastId); ok {
			return history, nil
		}
		return s.fetchAndCache(ctx, chatId)
	}

	// 3. 未获取到锁，说明其他请求正在回源，等待后重试
	s.log.Debugf("会话 %s 历史记录锁被占用，等待后重试", chatId)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(200 * time.Millisecond):
	}

	if history, ok := s.cached(ctx, chatId, lastId); ok {
		return history, nil
	}

	s.log.Warnf("等待后会话 %s 缓存仍未命中，直接回源", chatId)
	return s.fetch(ctx, chatId)
}

// cached 读取缓存并校验, 校验失败时删除缓存
func (s *historyService) cached(ctx context.Context, chatId string, lastId uint) ([]common.LlmMessage, bool) {
	history, err := s.rdb.GetConversationHistory(ctx, chatId)
	if err != nil {
		if !errors.Is(err, redis.ErrNil) {
			s.log.Warnf("从Redis获取会话 %s 历史记录失败: %v, 将从数据库获取", chatId, err)
		}
		return nil, false
	}
	if !consistent(history, lastId) {
		s.log.Warnf("会话 %s 历史缓存与数据库不一致, 重新回源", chatId)
		s.invalidate(chatId)
		return nil, false
	}
	return history, true
}

// consistent 缓存中消息ID须严格递增, 且以 lastId 结尾
func consistent(history []common.LlmMessage, lastId uint) bool {
	var prev uint
	for _, m := range history {
		if m.ID == 0 || m.ID <= prev {
			return false
		}
		prev = m.ID
	}
	return lastId == 0 || prev == lastId
}

func (s *historyService) Append(ctx context.Context, chatId string, messages ...common.LlmMessage) error {
	if s.rdb == nil || len(messages) == 0 {
		return nil
	}

	ttl := utils.GetTTLWithJitter(s.cfg.ConversationHistoryTTL)
	err := s.rdb.AppendToConversationHistory(ctx, chatId, ttl, messages...)
	if err != nil {
		s.log.Errorf("追加消息到会话 %s 历史记录失败: %v, 删除缓存", chatId, err)
		s.invalidate(chatId)
	}
	return err
}

func (s *historyService) Drop(ctx context.Context, chatId string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.DelConversationHistory(ctx, chatId)
}

// invalidate 只删除历史列表, 不动其他请求持有的锁
func (s *historyService) invalidate(chatId string) {
	if err := s.rdb.Del(context.Background(), redis.HistoryKey(chatId)).Err(); err != nil {
		s.log.Errorf("删除会话 %s 历史缓存失败: %v", chatId, err)
	}
}

func (s *historyService) fetchAndCache(ctx context.Context, chatId string) ([]common.LlmMessage, error) {
	history, err := s.fetch(ctx, chatId)
	if err != nil {
		return nil, err
	}

	ttl := utils.GetTTLWithJitter(s.cfg.ConversationHistoryTTL)
	if err := s.rdb.SetConversationHistory(context.Background(), chatId, history, ttl); err != nil {
		// 只记录错误，不阻塞返回
		s.log.Errorf("将会话 %s 历史记录存入Redis失败: %v", chatId, err)
	}
	return history, nil
}

func (s *historyService) fetch(ctx context.Context, chatId string) ([]common.LlmMessage, error) {
	list, err := s.store.ListMessages(ctx, chatId)
	if err != nil {
		return nil, fmt.Errorf("从数据库获取会话 %s 消息失败: %w", chatId, err)
	}
	return toLlmMessages(list), nil
}

func toLlmMessages(list []db.ChatMessage) []common.LlmMessage {
	history := make([]common.LlmMessage, 0, len(list))
	for _, m := range list {
		history = append(history, common.LlmMessage{ID: m.Id, Role: enum.Role(m.Role), Content: m.Content})
	}
	return history
}
