package user

import (
	"sort"

	"gitee.com/taoJie_1/support-chat/internal/knowledge"
	"gitee.com/taoJie_1/support-chat/model/common"
	"gitee.com/taoJie_1/support-chat/model/enum"
)

// MaxKnowledgeResults 单次检索返回的最大条目数
const MaxKnowledgeResults = 5

type KnowledgeService interface {
	// Retrieve 按意图过滤分类后打分, 返回分数降序的前5条, 无匹配时返回空切片
	Retrieve(intent enum.Intent, query string) []common.ScoredKnowledgeItem
}

type knowledgeService struct {
	store *knowledge.Store
}

func NewKnowledgeService(store *knowledge.Store) KnowledgeService {
	return &knowledgeService{store: store}
}

func (s *knowledgeService) Retrieve(intent enum.Intent, query string) []common.ScoredKnowledgeItem {
	var candidates []common.KnowledgeItem
	if category, ok := enum.IntentCategory(intent); ok {
		candidates = s.store.ItemsInCategory(category)
	} else {
		// unsupported 不过滤分类
		candidates = s.store.AllItems()
	}

	terms := knowledge.Terms(query)
	results := make([]common.ScoredKnowledgeItem, 0)
	for _, item := range candidates {
		score := knowledge.Score(item, terms)
		if score <= 0 {
			continue
		}
		results = append(results, common.ScoredKnowledgeItem{KnowledgeItem: item, RelevanceScore: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
	if len(results) > MaxKnowledgeResults {
		results = results[:MaxKnowledgeResults]
	}
	return results
}
