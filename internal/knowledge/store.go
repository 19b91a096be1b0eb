package knowledge

import (
	"fmt"

	"gitee.com/taoJie_1/support-chat/model/common"
	"gitee.com/taoJie_1/support-chat/model/enum"
)

// Store 只读的知识库, 初始化后不再修改, 可并发读取
type Store struct {
	items []common.KnowledgeItem
}

// NewStore 校验条目后创建知识库, id需唯一且分类需合法
func NewStore(items []common.KnowledgeItem) (*Store, error) {
	seen := make(map[string]struct{}, len(items))
	list := make([]common.KnowledgeItem, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("知识条目缺少id[kq9x0d]: %q", it.Title)
		}
		if _, ok := seen[it.ID]; ok {
			return nil, fmt.Errorf("知识条目id重复[kq9x0e]: %s", it.ID)
		}
		if !it.Category.Valid() {
			return nil, fmt.Errorf("知识条目 %s 分类不合法[kq9x0f]: %s", it.ID, it.Category)
		}
		seen[it.ID] = struct{}{}
		list = append(list, cloneItem(it))
	}
	return &Store{items: list}, nil
}

// AllItems 按目录顺序返回全部条目的副本
func (s *Store) AllItems() []common.KnowledgeItem {
	res := make([]common.KnowledgeItem, 0, len(s.items))
	for _, it := range s.items {
		res = append(res, cloneItem(it))
	}
	return res
}

// ItemsInCategory 按目录顺序返回指定分类的条目副本
func (s *Store) ItemsInCategory(category enum.Category) []common.KnowledgeItem {
	res := make([]common.KnowledgeItem, 0)
	for _, it := range s.items {
		if it.Category == category {
			res = append(res, cloneItem(it))
		}
	}
	return res
}

func (s *Store) Len() int {
	return len(s.items)
}

func cloneItem(it common.KnowledgeItem) common.KnowledgeItem {
	if it.Tags != nil {
		it.Tags = append([]string(nil), it.Tags...)
	}
	return it
}
