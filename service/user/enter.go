package user

import (
	"time"

	"gitee.com/taoJie_1/support-chat/internal/knowledge"
	"gitee.com/taoJie_1/support-chat/internal/llm"
	"gitee.com/taoJie_1/support-chat/internal/oss"
	"gitee.com/taoJie_1/support-chat/internal/redis"
	"gitee.com/taoJie_1/support-chat/model/config"
	"gitee.com/taoJie_1/support-chat/model/enum"
	"github.com/sirupsen/logrus"
)

// Deps 构建服务组所需的依赖, Redis 与 Oss 可为nil
type Deps struct {
	Log       *logrus.Logger
	Tz        *time.Location
	Store     ChatStore
	Knowledge *knowledge.Store
	Llm       llm.Service
	Redis     redis.Service
	Oss       oss.Service
	Ai        config.Ai
	RedisCfg  config.Redis
}

type ServiceGroup struct {
	IntentService    IntentService
	KnowledgeService KnowledgeService
	ResponseService  ResponseService
	AgentService     AgentService
	HistoryService   HistoryService
	ArchiveService   ArchiveService
	ChatService      ChatService
	Validator        IValidator
}

func NewServiceGroup(d Deps) ServiceGroup {
	if d.Log == nil {
		d.Log = logrus.New()
	}
	if d.Tz == nil {
		d.Tz = time.Local
	}

	g := ServiceGroup{
		IntentService:    NewIntentService(d.Log, d.Llm, enum.LlmSize(d.Ai.ClassifySize)),
		KnowledgeService: NewKnowledgeService(d.Knowledge),
		ResponseService:  NewResponseService(d.Log, d.Llm, enum.LlmSize(d.Ai.RespondSize)),
		HistoryService:   NewHistoryService(d.Log, d.Redis, d.Store, d.RedisCfg),
		ArchiveService:   NewArchiveService(d.Oss, d.Tz),
		Validator:        &Validator{MaxContentLength: d.Ai.MaxContentLength},
	}
	g.AgentService = NewAgentService(d.Log, g.IntentService, g.KnowledgeService, g.ResponseService)
	g.ChatService = NewChatService(d.Log, d.Tz, d.Store, g.HistoryService, g.AgentService, g.ArchiveService, g.Validator)
	return g
}
