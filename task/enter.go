package task

import "context"

// StaleChatLister 查询长时间未活跃的会话
type StaleChatLister interface {
	StaleChatIds(ctx context.Context, before int64, limit int) ([]string, error)
}

// ChatRemover 删除会话(含归档与缓存清理)
type ChatRemover interface {
	DeleteChat(ctx context.Context, chatId string) error
}

type Manager struct {
	lister  StaleChatLister
	remover ChatRemover
}

// NewManager 创建一个新的任务管理器
func NewManager(lister StaleChatLister, remover ChatRemover) *Manager {
	return &Manager{
		lister:  lister,
		remover: remover,
	}
}
