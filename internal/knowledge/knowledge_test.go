package knowledge

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gitee.com/taoJie_1/support-chat/model/common"
	"gitee.com/taoJie_1/support-chat/model/enum"
)

func TestTerms(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"How do I reset", []string{"how", "do", "i", "reset"}},
		{"  error\tERROR  Error ", []string{"error"}},
		{"", []string{}},
		{"   ", []string{}},
	}
	for _, c := range cases {
		if got := Terms(c.query); !reflect.DeepEqual(got, c.want) {
			t.Errorf("Terms(%q) = %v, 期望 %v", c.query, got, c.want)
		}
	}
}

func TestScore(t *testing.T) {
	item := common.KnowledgeItem{
		Title:   "What does Error E9-VORTEX mean?",
		Content: "The timeline has desynchronized.",
	}
	cases := []struct {
		name  string
		terms []string
		want  float64
	}{
		{"子串匹配", []string{"err"}, 1},
		{"部分命中", []string{"error", "battery"}, 0.5},
		{"跨越标题与内容", []string{"mean? the"}, 1},
		{"无命中", []string{"steam"}, 0},
		{"空查询", nil, 0},
	}
	for _, c := range cases {
		if got := Score(item, c.terms); got != c.want {
			t.Errorf("%s: Score = %v, 期望 %v", c.name, got, c.want)
		}
	}

	// 纯函数, 多次调用结果一致
	terms := Terms("vortex timeline steam")
	if Score(item, terms) != Score(item, terms) {
		t.Error("Score应是幂等的")
	}
}

func TestStore_Default(t *testing.T) {
	s := Default()
	all := s.AllItems()
	if len(all) != 8 || s.Len() != 8 {
		t.Fatalf("期望8个条目, 实际 %d", len(all))
	}
	if all[0].ID != "kb-001" || all[7].ID != "kb-008" {
		t.Errorf("目录顺序错误: %s ... %s", all[0].ID, all[7].ID)
	}
	for _, it := range all {
		if !it.Category.Valid() {
			t.Errorf("%s 分类不合法: %s", it.ID, it.Category)
		}
	}

	trouble := s.ItemsInCategory(enum.CategoryTroubleshooting)
	ids := make([]string, 0, len(trouble))
	for _, it := range trouble {
		ids = append(ids, it.ID)
	}
	if !reflect.DeepEqual(ids, []string{"kb-001", "kb-002", "kb-005"}) {
		t.Errorf("troubleshooting 分类条目错误: %v", ids)
	}
	if len(s.ItemsInCategory(enum.CategoryService)) != 0 {
		t.Error("service 分类应为空")
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := Default()
	all := s.AllItems()
	all[0].Title = "changed"
	all[0].Tags[0] = "changed"

	again := s.AllItems()
	if again[0].Title == "changed" || again[0].Tags[0] == "changed" {
		t.Error("调用方修改不应影响知识库")
	}
}

func TestNewStore_Invalid(t *testing.T) {
	cases := [][]common.KnowledgeItem{
		{{ID: "", Category: enum.CategoryParts}},
		{{ID: "a", Category: enum.CategoryParts}, {ID: "a", Category: enum.CategoryParts}},
		{{ID: "a", Category: "errors"}},
	}
	for i, items := range cases {
		if _, err := NewStore(items); err == nil {
			t.Errorf("第%d组应返回错误", i)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.yaml")
	data := []byte(`items:
  - id: p-1
    title: Spare fuses
    content: Fuses come in packs of ten.
    category: parts
    tags: [fuse]
  - id: s-1
    title: Smoke
    content: Leave the room.
    category: safety
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile失败: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("期望2个条目, 实际 %d", s.Len())
	}
	parts := s.ItemsInCategory(enum.CategoryParts)
	if len(parts) != 1 || parts[0].ID != "p-1" || parts[0].Tags[0] != "fuse" {
		t.Errorf("parts 条目错误: %+v", parts)
	}

	if _, err := Parse([]byte("items:\n  - id: x\n    category: errors\n")); err == nil {
		t.Error("非法分类应返回错误")
	}
	if _, err := Parse([]byte("items: []\n")); err == nil {
		t.Error("空目录应返回错误")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("文件不存在应返回错误")
	}
}
