package dto

import "gitee.com/taoJie_1/support-chat/model/common"

// CreateChatRequest 创建会话的请求体, 可为空
type CreateChatRequest struct {
	Metadata map[string]interface{} `json:"metadata"`
}

// ChatSession 会话信息
type ChatSession struct {
	ID        string                 `json:"id"`
	CreatedAt string                 `json:"created_at"`
	UpdatedAt string                 `json:"updated_at"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// Message 已持久化的单条消息
type Message struct {
	ID        uint                   `json:"id"`
	ChatID    string                 `json:"chat_id"`
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	CreatedAt string                 `json:"created_at"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// ChatMessageRequest 发送消息的请求体
type ChatMessageRequest struct {
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata"`
}

// ChatMessageResponse 用户消息与助手回复
type ChatMessageResponse struct {
	Message  Message `json:"message"`
	Response Message `json:"response"`
}

// ChatHistory 会话的全部消息
type ChatHistory struct {
	ChatID   string    `json:"chat_id"`
	Messages []Message `json:"messages"`
}

// KnowledgeSearchRequest 知识库检索参数
type KnowledgeSearchRequest struct {
	Query  string `form:"q" json:"query" jsonschema:"free text query, matched case-insensitively against article titles and contents"`
	Intent string `form:"intent" json:"intent,omitempty" jsonschema:"optional intent used to narrow the search: troubleshooting, warranty, return_policy, service, parts or unsupported"`
}

// KnowledgeSearchResponse 知识库检索结果
type KnowledgeSearchResponse struct {
	Intent string                       `json:"intent"`
	Items  []common.ScoredKnowledgeItem `json:"items"`
}
