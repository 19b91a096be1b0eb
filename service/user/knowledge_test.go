package user

import (
	"testing"

	"gitee.com/taoJie_1/support-chat/internal/knowledge"
	"gitee.com/taoJie_1/support-chat/model/enum"
)

func TestRetrieve_ResetScenario(t *testing.T) {
	svc := NewKnowledgeService(knowledge.Default())
	items := svc.Retrieve(enum.IntentUnsupported, "how do I reset")
	if len(items) == 0 {
		t.Fatal("期望有结果")
	}
	if items[0].ID != "kb-001" {
		t.Errorf("kb-001 应排第一, 实际: %s", items[0].ID)
	}
	if items[0].RelevanceScore <= 0 || items[0].RelevanceScore > 1 {
		t.Errorf("分数越界: %v", items[0].RelevanceScore)
	}
}

func TestRetrieve_ReturnPolicyScenario(t *testing.T) {
	svc := NewKnowledgeService(knowledge.Default())
	items := svc.Retrieve(enum.IntentReturnPolicy, "return policy")
	found := false
	for _, it := range items {
		if it.Category != enum.CategoryPolicy {
			t.Errorf("%s 分类应为policy, 实际 %s", it.ID, it.Category)
		}
		if it.ID == "kb-003" {
			found = true
		}
	}
	if !found {
		t.Error("结果中应包含kb-003")
	}
}

func TestRetrieve_NoMatch(t *testing.T) {
	svc := NewKnowledgeService(knowledge.Default())
	for _, intent := range enum.Intents {
		items := svc.Retrieve(intent, "xyzzy plugh")
		if items == nil || len(items) != 0 {
			t.Errorf("意图 %s 期望空切片, 实际 %v", intent, items)
		}
	}
	if items := svc.Retrieve(enum.IntentUnsupported, ""); len(items) != 0 {
		t.Errorf("空查询应无结果, 实际 %d", len(items))
	}
}

func TestRetrieve_CategoryFilter(t *testing.T) {
	svc := NewKnowledgeService(knowledge.Default())
	// 覆盖目录中绝大多数词
	query := "the a of device if you your is in to and or"
	for _, intent := range enum.Intents {
		category, filtered := enum.IntentCategory(intent)
		for _, it := range svc.Retrieve(intent, query) {
			if filtered && it.Category != category {
				t.Errorf("意图 %s 返回了分类 %s 的条目 %s", intent, it.Category, it.ID)
			}
		}
	}
	// service 分类在内置目录中没有条目
	if items := svc.Retrieve(enum.IntentService, "appointment service"); len(items) != 0 {
		t.Errorf("service 意图期望无结果, 实际 %v", items)
	}
}

func TestRetrieve_LimitAndOrder(t *testing.T) {
	svc := NewKnowledgeService(knowledge.Default())
	items := svc.Retrieve(enum.IntentUnsupported, "the device vents error return phone")
	if len(items) > MaxKnowledgeResults {
		t.Fatalf("结果超过上限: %d", len(items))
	}
	if len(items) != MaxKnowledgeResults {
		t.Errorf("期望截断为%d条, 实际 %d", MaxKnowledgeResults, len(items))
	}

	catalogIndex := map[string]int{}
	for i, it := range knowledge.Default().AllItems() {
		catalogIndex[it.ID] = i
	}
	for i := 1; i < len(items); i++ {
		prev, cur := items[i-1], items[i]
		if prev.RelevanceScore < cur.RelevanceScore {
			t.Errorf("未按分数降序: %v < %v", prev.RelevanceScore, cur.RelevanceScore)
		}
		if prev.RelevanceScore == cur.RelevanceScore && catalogIndex[prev.ID] > catalogIndex[cur.ID] {
			t.Errorf("同分时应保持目录顺序: %s 在 %s 之前", prev.ID, cur.ID)
		}
	}
}

func TestRetrieve_SubstringMatch(t *testing.T) {
	svc := NewKnowledgeService(knowledge.Default())
	items := svc.Retrieve(enum.IntentTroubleshooting, "ERR")
	if len(items) == 0 || items[0].ID != "kb-002" {
		t.Errorf("ERR 应以子串方式命中kb-002, 实际 %v", items)
	}
}
