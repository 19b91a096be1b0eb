package enum

import (
	"strings"
	"testing"
)

// TestIntentPromptConsistency 确保意图分类提示词中的标签与代码中定义的常量严格一致,
// 防止修改常量后忘记更新提示词
func TestIntentPromptConsistency(t *testing.T) {
	prompt := string(SystemPromptDetermineIntent)

	for _, intent := range Intents {
		expectedSubstring := `"` + string(intent) + `"`
		if !strings.Contains(prompt, expectedSubstring) {
			t.Errorf("SystemPromptDetermineIntent应包含意图常量: %s", expectedSubstring)
		}
	}
}

func TestIntentCategoryTable(t *testing.T) {
	cases := []struct {
		intent   Intent
		category Category
		ok       bool
	}{
		{IntentTroubleshooting, CategoryTroubleshooting, true},
		{IntentWarranty, CategoryPolicy, true},
		{IntentReturnPolicy, CategoryPolicy, true},
		{IntentService, CategoryService, true},
		{IntentParts, CategoryParts, true},
		{IntentUnsupported, "", false},
	}

	for _, c := range cases {
		got, ok := IntentCategory(c.intent)
		if ok != c.ok || got != c.category {
			t.Errorf("IntentCategory(%s) = (%s, %v), 期望 (%s, %v)", c.intent, got, ok, c.category, c.ok)
		}
		if ok && !got.Valid() {
			t.Errorf("意图 %s 映射到了非法分类 %s", c.intent, got)
		}
	}

	// 每个可处理意图都必须有映射
	for _, intent := range Intents {
		if _, ok := IntentCategory(intent); !ok && intent != IntentUnsupported {
			t.Errorf("意图 %s 缺少分类映射", intent)
		}
	}
}

func TestParseIntent(t *testing.T) {
	if i, ok := ParseIntent(""); !ok || i != IntentUnsupported {
		t.Errorf("空意图应解析为 unsupported, 实际: %s %v", i, ok)
	}
	if i, ok := ParseIntent("warranty"); !ok || i != IntentWarranty {
		t.Errorf("解析 warranty 失败: %s %v", i, ok)
	}
	if _, ok := ParseIntent("errors"); ok {
		t.Error("未知意图不应解析成功")
	}
}
