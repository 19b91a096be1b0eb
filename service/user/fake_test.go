package user

import (
	"context"
	"sync"
	"time"

	"gitee.com/taoJie_1/support-chat/dao"
	"gitee.com/taoJie_1/support-chat/internal/knowledge"
	"gitee.com/taoJie_1/support-chat/internal/llm"
	"gitee.com/taoJie_1/support-chat/model/common"
	"gitee.com/taoJie_1/support-chat/model/config"
	"gitee.com/taoJie_1/support-chat/model/db"
	"gitee.com/taoJie_1/support-chat/model/enum"
	"github.com/sirupsen/logrus"
)

// fakeLlm 按调用名返回预设内容, 并记录每次调用
type fakeLlm struct {
	mu      sync.Mutex
	calls   []llm.Call
	replies map[enum.TraceName]string
	errs    map[enum.TraceName]error
}

func newFakeLlm(intent enum.Intent, answer string) *fakeLlm {
	return &fakeLlm{
		replies: map[enum.TraceName]string{
			enum.TraceDetermineIntent:  `{"reasoning":"test","intent":"` + string(intent) + `"}`,
			enum.TraceGenerateResponse: answer,
		},
		errs: map[enum.TraceName]error{},
	}
}

func (f *fakeLlm) Complete(ctx context.Context, call llm.Call) (*llm.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	call.Messages = append([]common.LlmMessage(nil), call.Messages...)
	f.calls = append(f.calls, call)
	if err := f.errs[call.Name]; err != nil {
		return nil, err
	}
	return &llm.Result{Content: f.replies[call.Name], TraceID: "span-" + string(call.Name)}, nil
}

func (f *fakeLlm) lastCall(name enum.TraceName) (llm.Call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].Name == name {
			return f.calls[i], true
		}
	}
	return llm.Call{}, false
}

// memStore 内存实现的会话存储
type memStore struct {
	mu       sync.Mutex
	chats    map[string]*db.Chat
	messages map[string][]db.ChatMessage
	nextId   uint
}

func newMemStore() *memStore {
	return &memStore{chats: map[string]*db.Chat{}, messages: map[string][]db.ChatMessage{}}
}

func (m *memStore) CreateChat(ctx context.Context, id string, metadata db.JSONMap, seed *db.ChatMessage) (*db.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UnixMilli()
	chat := &db.Chat{Id: id, Metadata: metadata, CreatedAt: now, UpdatedAt: now}
	m.chats[id] = chat
	if seed != nil {
		seed.ChatId = id
		m.insert(seed)
	}
	c := *chat
	return &c, nil
}

func (m *memStore) GetChat(ctx context.Context, id string) (*db.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	chat, ok := m.chats[id]
	if !ok {
		return nil, dao.ErrChatNotFound
	}
	c := *chat
	return &c, nil
}

func (m *memStore) AddMessage(ctx context.Context, chatId string, role enum.Role, content string, metadata db.JSONMap) (*db.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chats[chatId]; !ok {
		return nil, dao.ErrChatNotFound
	}
	msg := &db.ChatMessage{ChatId: chatId, Role: string(role), Content: content, Metadata: metadata}
	m.insert(msg)
	m.chats[chatId].UpdatedAt = msg.CreatedAt
	return msg, nil
}

func (m *memStore) insert(msg *db.ChatMessage) {
	m.nextId++
	msg.Id = m.nextId
	msg.CreatedAt = time.Now().UnixMilli()
	m.messages[msg.ChatId] = append(m.messages[msg.ChatId], *msg)
}

func (m *memStore) ListMessages(ctx context.Context, chatId string) ([]db.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chats[chatId]; !ok {
		return nil, dao.ErrChatNotFound
	}
	return append([]db.ChatMessage(nil), m.messages[chatId]...), nil
}

func (m *memStore) DeleteChat(ctx context.Context, chatId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chats[chatId]; !ok {
		return dao.ErrChatNotFound
	}
	delete(m.chats, chatId)
	delete(m.messages, chatId)
	return nil
}

func quietLog() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func newTestGroup(store ChatStore, l llm.Service) ServiceGroup {
	return NewServiceGroup(Deps{
		Log:       quietLog(),
		Tz:        time.UTC,
		Store:     store,
		Knowledge: knowledge.Default(),
		Llm:       l,
		Ai:        config.Ai{ClassifySize: "small", RespondSize: "medium", MaxContentLength: 100},
	})
}
