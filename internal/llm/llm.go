package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gitee.com/taoJie_1/support-chat/model/common"
	"gitee.com/taoJie_1/support-chat/model/config"
	"gitee.com/taoJie_1/support-chat/model/enum"
	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoClient    = errors.New("未找到可用的LLM客户端")
	ErrEmptyResult = errors.New("LLM服务返回了空结果")
)

// Call 一次生成调用
type Call struct {
	Name         enum.TraceName
	Size         enum.LlmSize
	Instructions enum.SystemPrompt
	Messages     []common.LlmMessage
	// Schema 不为nil时要求模型返回满足该结构的JSON
	Schema      *OutputSchema
	Temperature *float32
}

// Result 生成结果, TraceID 为本次调用的span id
type Result struct {
	Content string
	TraceID string
}

type Service interface {
	// Complete 以 instructions 作为 system 指令, messages 作为输入调用模型
	Complete(ctx context.Context, call Call) (*Result, error)
}

// client 封装了与LLM交互的底层逻辑
type client struct {
	log        *logrus.Logger
	llmClients map[enum.LlmSize]*openai.Client
	llmConfigs []config.Llm
}

// NewClient 创建一个新的LLM客户端实例，并通过依赖注入初始化
func NewClient(log *logrus.Logger, clients map[enum.LlmSize]*openai.Client, configs []config.Llm) Service {
	return &client{
		log:        log,
		llmClients: clients,
		llmConfigs: configs,
	}
}

// pick 根据大小获取客户端及配置, 没找到指定大小时使用第一个配置的模型
func (c *client) pick(size enum.LlmSize) (*openai.Client, *config.Llm, error) {
	var cfg *config.Llm
	for i := range c.llmConfigs {
		if enum.LlmSize(c.llmConfigs[i].Size) == size {
			cfg = &c.llmConfigs[i]
			break
		}
	}
	if cfg == nil && len(c.llmConfigs) > 0 {
		cfg = &c.llmConfigs[0]
	}
	if cfg == nil || cfg.Model == "" {
		return nil, nil, ErrNoClient
	}
	cl, ok := c.llmClients[enum.LlmSize(cfg.Size)]
	if !ok || cl == nil {
		return nil, nil, ErrNoClient
	}
	return cl, cfg, nil
}

// filterContent 从LLM的原始响应中剥离思考过程标签
func filterContent(rawAnswer string) string {
	if parts := strings.SplitN(rawAnswer, "</think>", 2); len(parts) > 1 {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(rawAnswer)
}

func (c *client) Complete(ctx context.Context, call Call) (*Result, error) {
	llmClient, llmConfig, err := c.pick(call.Size)
	if err != nil {
		return nil, err
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(call.Messages)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: string(call.Instructions),
	})
	for _, msg := range call.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	req := openai.ChatCompletionRequest{
		Model:    llmConfig.Model,
		Messages: messages,
	}

	// 优先使用传入的temperature参数，其次是配置文件中的，最后使用LLM默认值
	if call.Temperature != nil {
		req.Temperature = *call.Temperature
	} else if llmConfig.Temperature != nil {
		req.Temperature = *llmConfig.Temperature
	}

	if call.Schema != nil {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   call.Schema.Name,
				Schema: call.Schema.schema,
				Strict: true,
			},
		}
	}

	spanID := uuid.NewString()
	entry := c.log.WithFields(logrus.Fields{
		"trace":    call.Name,
		"trace_id": TraceFromContext(ctx),
		"span_id":  spanID,
		"model":    llmConfig.Model,
	})
	entry.Debug("调用LLM")

	resp, err := llmClient.CreateChatCompletion(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		entry.Errorf("LLM API调用失败: %v", err)
		return nil, fmt.Errorf("LLM服务暂不可用[okdm3w]: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, ErrEmptyResult
	}

	content := resp.Choices[0].Message.Content
	if call.Schema != nil {
		if content, err = call.Schema.Check(content); err != nil {
			entry.Warnf("LLM结构化输出不合法: %v", err)
			return nil, err
		}
	}

	return &Result{Content: content, TraceID: spanID}, nil
}
