package user

import (
	"context"
	"fmt"
	"strings"

	"gitee.com/taoJie_1/support-chat/internal/llm"
	"gitee.com/taoJie_1/support-chat/model/common"
	"gitee.com/taoJie_1/support-chat/model/enum"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AgentService 串联 意图分类 -> 知识检索 -> 回复生成, 各阶段严格顺序执行
type AgentService interface {
	// Process 分类并检索, 返回分析结果
	Process(ctx context.Context, history []common.LlmMessage) (*common.AnalysisResult, error)
	// Reply 在一个trace内完成 Process 与回复生成
	Reply(ctx context.Context, history []common.LlmMessage) (string, error)
}

type agentService struct {
	log       *logrus.Logger
	intent    IntentService
	knowledge KnowledgeService
	response  ResponseService
}

func NewAgentService(log *logrus.Logger, intent IntentService, knowledge KnowledgeService, response ResponseService) AgentService {
	return &agentService{log: log, intent: intent, knowledge: knowledge, response: response}
}

func (s *agentService) Process(ctx context.Context, history []common.LlmMessage) (*common.AnalysisResult, error) {
	query := lastUserMessage(history)

	classification, err := s.intent.Classify(ctx, history)
	if err != nil {
		return nil, err
	}

	items := s.knowledge.Retrieve(classification.Intent, query)

	s.log.WithFields(logrus.Fields{
		"trace_id": llm.TraceFromContext(ctx),
		"intent":   classification.Intent,
		"matches":  len(items),
	}).Info("消息分析完成")

	if len(items) == 0 {
		return &common.AnalysisResult{
			Intent:            classification.Intent,
			FoundRelevantInfo: false,
			Message:           enum.KnowledgeNotFoundMsg,
		}, nil
	}

	return &common.AnalysisResult{
		Intent:            classification.Intent,
		FoundRelevantInfo: true,
		KbContext:         buildKbContext(items),
		Items:             items,
	}, nil
}

func (s *agentService) Reply(ctx context.Context, history []common.LlmMessage) (string, error) {
	if llm.TraceFromContext(ctx) == "" {
		ctx = llm.WithTrace(ctx, uuid.NewString())
	}
	entry := s.log.WithFields(logrus.Fields{
		"trace":    enum.TraceCustomerSupportChat,
		"trace_id": llm.TraceFromContext(ctx),
	})

	analysis, err := s.Process(ctx, history)
	if err != nil {
		entry.Warnf("消息分析失败: %v", err)
		return "", err
	}

	answer, err := s.response.Compose(ctx, history, analysis)
	if err != nil {
		entry.Warnf("回复生成失败: %v", err)
		return "", err
	}
	return answer, nil
}

// lastUserMessage 从后往前找最近一条用户消息, 没有时返回空字符串
func lastUserMessage(history []common.LlmMessage) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == enum.RoleUser {
			return history[i].Content
		}
	}
	return ""
}

func buildKbContext(items []common.ScoredKnowledgeItem) string {
	parts := make([]string, 0, len(items))
	for i, item := range items {
		parts = append(parts, fmt.Sprintf("Knowledge Item %d: %s\n%s", i+1, item.Title, item.Content))
	}
	return strings.Join(parts, "\n\n")
}
