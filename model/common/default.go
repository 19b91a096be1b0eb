package common

import "gitee.com/taoJie_1/support-chat/model/enum"

// LlmMessage 会话历史中的一条消息, 也是发送给LLM的消息格式
type LlmMessage struct {
	// ID 已持久化消息的ID, 用于校验历史缓存; 未持久化的消息为0
	ID      uint      `json:"id,omitempty"`
	Role    enum.Role `json:"role"`    // 消息角色: system, user, assistant
	Content string    `json:"content"` // 消息内容
}

// KnowledgeItem 知识库中的一篇支持文章, 加载后不可变
type KnowledgeItem struct {
	ID       string        `json:"id" yaml:"id"`
	Title    string        `json:"title" yaml:"title"`
	Content  string        `json:"content" yaml:"content"`
	Category enum.Category `json:"category" yaml:"category"`
	Tags     []string      `json:"tags" yaml:"tags"`
}

// ScoredKnowledgeItem 附带相关度分数的知识条目, 仅在单次请求内有效
type ScoredKnowledgeItem struct {
	KnowledgeItem
	RelevanceScore float64 `json:"relevance_score"` // [0,1]
}

// IntentClassification 意图分类结果, 由LLM按schema输出
type IntentClassification struct {
	Reasoning string      `json:"reasoning" jsonschema:"brief rationale for the chosen intent"`
	Intent    enum.Intent `json:"intent" jsonschema:"the single intent that best describes the request"`
}

// AnalysisResult 单次消息处理的分析结果, 交给回复生成使用
type AnalysisResult struct {
	Intent            enum.Intent
	FoundRelevantInfo bool
	// FoundRelevantInfo 为true时有效
	KbContext string
	Items     []ScoredKnowledgeItem
	// FoundRelevantInfo 为false时的提示
	Message string
}
