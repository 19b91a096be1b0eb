package mcp

import (
	"context"
	"fmt"
	"net/http"

	"gitee.com/taoJie_1/support-chat/model/common"
	"gitee.com/taoJie_1/support-chat/model/dto"
	"gitee.com/taoJie_1/support-chat/model/enum"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

const ToolSearchKnowledgeBase = "search_knowledge_base"

// Retriever 知识检索
type Retriever interface {
	Retrieve(intent enum.Intent, query string) []common.ScoredKnowledgeItem
}

// SearchHit 检索结果条目
type SearchHit struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	RelevanceScore float64  `json:"relevance_score" jsonschema:"share of query terms found in the article, between 0 and 1"`
}

type SearchOutput struct {
	Intent string      `json:"intent"`
	Items  []SearchHit `json:"items"`
}

// NewServer 创建暴露知识库检索工具的MCP服务
func NewServer(log *logrus.Logger, retriever Retriever, name, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolSearchKnowledgeBase,
		Description: "Search the customer support knowledge base. Returns at most 5 articles ordered by relevance.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in dto.KnowledgeSearchRequest) (*mcp.CallToolResult, SearchOutput, error) {
		intent, ok := enum.ParseIntent(in.Intent)
		if !ok {
			return nil, SearchOutput{}, fmt.Errorf("未知的意图: %s", in.Intent)
		}

		items := retriever.Retrieve(intent, in.Query)
		out := SearchOutput{Intent: string(intent), Items: make([]SearchHit, 0, len(items))}
		for _, it := range items {
			tags := make([]string, len(it.Tags))
			copy(tags, it.Tags)
			out.Items = append(out.Items, SearchHit{
				ID:             it.ID,
				Title:          it.Title,
				Content:        it.Content,
				Category:       string(it.Category),
				Tags:           tags,
				RelevanceScore: it.RelevanceScore,
			})
		}

		log.WithFields(logrus.Fields{"intent": intent, "matches": len(out.Items)}).Debug("MCP知识库检索")
		return nil, out, nil
	})

	return server
}

// NewHandler 以streamable HTTP方式提供MCP服务
func NewHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}
