package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gitee.com/taoJie_1/support-chat/internal/oss"
	"gitee.com/taoJie_1/support-chat/model/db"
	"gitee.com/taoJie_1/support-chat/model/dto"
)

// ArchiveService 删除会话前归档聊天记录
type ArchiveService interface {
	// Archive 上传会话记录, 返回对象地址; 未配置OSS时返回空字符串
	Archive(ctx context.Context, chat *db.Chat, messages []db.ChatMessage) (string, error)
}

type transcript struct {
	dto.ChatHistory
	Chat       dto.ChatSession `json:"chat"`
	ArchivedAt string          `json:"archived_at"`
}

type archiveService struct {
	oss oss.Service
	tz  *time.Location
}

func NewArchiveService(ossService oss.Service, tz *time.Location) ArchiveService {
	return &archiveService{oss: ossService, tz: tz}
}

func (s *archiveService) Archive(ctx context.Context, chat *db.Chat, messages []db.ChatMessage) (string, error) {
	if s.oss == nil {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := json.Marshal(transcript{
		ChatHistory: toChatHistory(chat.Id, messages, s.tz),
		Chat:        toChatSession(chat, s.tz),
		ArchivedAt:  time.Now().In(s.tz).Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("序列化会话记录失败: %w", err)
	}

	key, err := s.oss.PutObject(chat.Id+".json", data, "application/json")
	if err != nil {
		return "", err
	}
	return s.oss.GetURL(key), nil
}
