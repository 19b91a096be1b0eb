package user

import (
	"context"
	"fmt"
	"time"

	"gitee.com/taoJie_1/support-chat/model/common"
	"gitee.com/taoJie_1/support-chat/model/db"
	"gitee.com/taoJie_1/support-chat/model/dto"
	"gitee.com/taoJie_1/support-chat/model/enum"
	"gitee.com/taoJie_1/support-chat/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ChatStore 会话存储, 会话不存在时返回 dao.ErrChatNotFound
type ChatStore interface {
	CreateChat(ctx context.Context, id string, metadata db.JSONMap, seed *db.ChatMessage) (*db.Chat, error)
	GetChat(ctx context.Context, id string) (*db.Chat, error)
	AddMessage(ctx context.Context, chatId string, role enum.Role, content string, metadata db.JSONMap) (*db.ChatMessage, error)
	ListMessages(ctx context.Context, chatId string) ([]db.ChatMessage, error)
	DeleteChat(ctx context.Context, chatId string) error
}

type ChatService interface {
	CreateChat(ctx context.Context, metadata map[string]interface{}) (*dto.ChatSession, error)
	GetChat(ctx context.Context, chatId string) (*dto.ChatSession, error)
	ListMessages(ctx context.Context, chatId string) (*dto.ChatHistory, error)
	// HandleNewMessage 保存用户消息, 执行处理流程, 保存并返回助手回复
	HandleNewMessage(ctx context.Context, chatId string, req *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error)
	DeleteChat(ctx context.Context, chatId string) error
}

type chatService struct {
	log       *logrus.Logger
	tz        *time.Location
	store     ChatStore
	history   HistoryService
	agent     AgentService
	archive   ArchiveService
	validator IValidator
}

func NewChatService(log *logrus.Logger, tz *time.Location, store ChatStore, history HistoryService, agent AgentService, archive ArchiveService, validator IValidator) ChatService {
	if tz == nil {
		tz = time.Local
	}
	return &chatService{
		log:       log,
		tz:        tz,
		store:     store,
		history:   history,
		agent:     agent,
		archive:   archive,
		validator: validator,
	}
}

func (s *chatService) CreateChat(ctx context.Context, metadata map[string]interface{}) (*dto.ChatSession, error) {
	seed := &db.ChatMessage{Role: string(enum.RoleSystem), Content: string(enum.SystemPromptWelcome)}
	chat, err := s.store.CreateChat(ctx, uuid.NewString(), db.JSONMap(metadata), seed)
	if err != nil {
		return nil, err
	}
	s.log.WithField("chat_id", chat.Id).Info("创建会话")
	session := toChatSession(chat, s.tz)
	return &session, nil
}

func (s *chatService) GetChat(ctx context.Context, chatId string) (*dto.ChatSession, error) {
	chat, err := s.store.GetChat(ctx, chatId)
	if err != nil {
		return nil, err
	}
	session := toChatSession(chat, s.tz)
	return &session, nil
}

func (s *chatService) ListMessages(ctx context.Context, chatId string) (*dto.ChatHistory, error) {
	list, err := s.store.ListMessages(ctx, chatId)
	if err != nil {
		return nil, err
	}
	h := toChatHistory(chatId, list, s.tz)
	return &h, nil
}

func (s *chatService) HandleNewMessage(ctx context.Context, chatId string, req *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error) {
	// 会话不存在优先于参数错误
	if _, err := s.store.GetChat(ctx, chatId); err != nil {
		return nil, err
	}
	if err := s.validator.ValidatorChatMessageRequest(req); err != nil {
		return nil, err
	}

	entry := s.log.WithField("chat_id", chatId)

	userMsg, err := s.store.AddMessage(ctx, chatId, enum.RoleUser, req.Content, db.JSONMap(req.Metadata))
	if err != nil {
		return nil, err
	}
	_ = s.history.Append(ctx, chatId, common.LlmMessage{ID: userMsg.Id, Role: enum.RoleUser, Content: userMsg.Content})

	history, err := s.history.Get(ctx, chatId, userMsg.Id)
	if err != nil {
		return nil, err
	}

	answer, err := s.agent.Reply(ctx, history)
	if err != nil {
		entry.Errorf("处理消息失败: %v", err)
		return nil, err
	}

	assistantMsg, err := s.store.AddMessage(ctx, chatId, enum.RoleAssistant, answer, nil)
	if err != nil {
		return nil, fmt.Errorf("保存回复失败: %w", err)
	}
	_ = s.history.Append(ctx, chatId, common.LlmMessage{ID: assistantMsg.Id, Role: enum.RoleAssistant, Content: assistantMsg.Content})

	return &dto.ChatMessageResponse{
		Message:  toMessage(userMsg, s.tz),
		Response: toMessage(assistantMsg, s.tz),
	}, nil
}

func (s *chatService) DeleteChat(ctx context.Context, chatId string) error {
	chat, err := s.store.GetChat(ctx, chatId)
	if err != nil {
		return err
	}

	entry := s.log.WithField("chat_id", chatId)
	if s.archive != nil {
		if list, err := s.store.ListMessages(ctx, chatId); err != nil {
			entry.Warnf("归档会话前读取消息失败: %v", err)
		} else if url, err := s.archive.Archive(ctx, chat, list); err != nil {
			entry.Warnf("归档会话失败: %v", err)
		} else if url != "" {
			entry.WithField("url", url).Info("会话已归档")
		}
	}

	if err := s.store.DeleteChat(ctx, chatId); err != nil {
		return err
	}
	if err := s.history.Drop(ctx, chatId); err != nil {
		entry.Warnf("删除会话历史缓存失败: %v", err)
	}
	entry.Info("删除会话")
	return nil
}

func toChatSession(chat *db.Chat, tz *time.Location) dto.ChatSession {
	return dto.ChatSession{
		ID:        chat.Id,
		CreatedAt: utils.MilliFormat(chat.CreatedAt, tz),
		UpdatedAt: utils.MilliFormat(chat.UpdatedAt, tz),
		Metadata:  metadataOrEmpty(chat.Metadata),
	}
}

func toMessage(m *db.ChatMessage, tz *time.Location) dto.Message {
	return dto.Message{
		ID:        m.Id,
		ChatID:    m.ChatId,
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: utils.MilliFormat(m.CreatedAt, tz),
		Metadata:  metadataOrEmpty(m.Metadata),
	}
}

func toChatHistory(chatId string, list []db.ChatMessage, tz *time.Location) dto.ChatHistory {
	messages := make([]dto.Message, 0, len(list))
	for i := range list {
		messages = append(messages, toMessage(&list[i], tz))
	}
	return dto.ChatHistory{ChatID: chatId, Messages: messages}
}

func metadataOrEmpty(m db.JSONMap) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}
