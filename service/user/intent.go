package user

import (
	"context"
	"fmt"

	"gitee.com/taoJie_1/support-chat/internal/llm"
	"gitee.com/taoJie_1/support-chat/model/common"
	"gitee.com/taoJie_1/support-chat/model/enum"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/sirupsen/logrus"
)

// intentSchema intent 限定为封闭集合
var intentSchema = llm.MustOutputSchema[common.IntentClassification]("intent_classification", func(s *jsonschema.Schema) {
	values := make([]any, 0, len(enum.Intents))
	for _, i := range enum.Intents {
		values = append(values, string(i))
	}
	s.Properties["intent"].Enum = values
})

type IntentService interface {
	// Classify 基于完整的会话历史判断用户意图, 失败直接返回错误, 不做降级
	Classify(ctx context.Context, history []common.LlmMessage) (*common.IntentClassification, error)
}

type intentService struct {
	log  *logrus.Logger
	llm  llm.Service
	size enum.LlmSize
}

func NewIntentService(log *logrus.Logger, llmService llm.Service, size enum.LlmSize) IntentService {
	return &intentService{log: log, llm: llmService, size: size}
}

func (s *intentService) Classify(ctx context.Context, history []common.LlmMessage) (*common.IntentClassification, error) {
	if s.llm == nil {
		return nil, fmt.Errorf("LLM服务未初始化[vq1x7c]")
	}

	res, err := s.llm.Complete(ctx, llm.Call{
		Name:         enum.TraceDetermineIntent,
		Size:         s.size,
		Instructions: enum.SystemPromptDetermineIntent,
		Messages:     history,
		Schema:       intentSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("意图分类失败: %w", err)
	}

	var out common.IntentClassification
	if err := intentSchema.Decode(res.Content, &out); err != nil {
		return nil, fmt.Errorf("意图分类失败: %w", err)
	}
	if !out.Intent.Valid() {
		return nil, fmt.Errorf("意图分类失败: %w: %s", llm.ErrSchemaViolation, out.Intent)
	}

	s.log.WithFields(logrus.Fields{
		"trace_id": llm.TraceFromContext(ctx),
		"span_id":  res.TraceID,
		"intent":   out.Intent,
	}).Debug("意图分类完成")
	return &out, nil
}
