package user

import (
	"context"
	"fmt"

	"gitee.com/taoJie_1/support-chat/internal/llm"
	"gitee.com/taoJie_1/support-chat/model/common"
	"gitee.com/taoJie_1/support-chat/model/enum"
	"github.com/sirupsen/logrus"
)

type ResponseService interface {
	// Compose 注入知识库上下文后生成回复, 原样返回模型输出
	Compose(ctx context.Context, history []common.LlmMessage, analysis *common.AnalysisResult) (string, error)
}

type responseService struct {
	log  *logrus.Logger
	llm  llm.Service
	size enum.LlmSize
}

func NewResponseService(log *logrus.Logger, llmService llm.Service, size enum.LlmSize) ResponseService {
	return &responseService{log: log, llm: llmService, size: size}
}

func (s *responseService) Compose(ctx context.Context, history []common.LlmMessage, analysis *common.AnalysisResult) (string, error) {
	if s.llm == nil {
		return "", fmt.Errorf("LLM服务未初始化[vq1x7d]")
	}

	res, err := s.llm.Complete(ctx, llm.Call{
		Name:         enum.TraceGenerateResponse,
		Size:         s.size,
		Instructions: enum.SystemPromptGenerateResponse,
		Messages:     augmentHistory(history, analysis),
	})
	if err != nil {
		return "", fmt.Errorf("生成回复失败: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"trace_id": llm.TraceFromContext(ctx),
		"span_id":  res.TraceID,
	}).Debug("回复生成完成")
	return res.Content, nil
}

// augmentHistory 返回注入知识库上下文后的历史副本, 不修改传入的切片
// 已有 system 消息时追加到第一条, 否则在最前面插入一条新的 system 消息
func augmentHistory(history []common.LlmMessage, analysis *common.AnalysisResult) []common.LlmMessage {
	out := make([]common.LlmMessage, len(history), len(history)+1)
	copy(out, history)

	if analysis == nil || !analysis.FoundRelevantInfo || analysis.KbContext == "" {
		return out
	}

	for i := range out {
		if out[i].Role == enum.RoleSystem {
			out[i].Content += "\n\n" + enum.KnowledgeContextHeader + "\n" + analysis.KbContext
			return out
		}
	}

	return append([]common.LlmMessage{{
		Role:    enum.RoleSystem,
		Content: string(enum.SystemPromptSupportPersona) + "\n\n" + analysis.KbContext,
	}}, out...)
}
