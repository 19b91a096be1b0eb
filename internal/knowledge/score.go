package knowledge

import (
	"strings"

	"gitee.com/taoJie_1/support-chat/model/common"
)

// Terms 将查询按空白切分并转为小写, 去重后保持首次出现的顺序
func Terms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	terms := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}

// Score 标题与内容拼接后, 以子串方式命中的查询词数除以查询词总数, 取值[0,1]
func Score(item common.KnowledgeItem, terms []string) float64 {
	if len(terms) == 0 {
		return 0
	}
	text := strings.ToLower(item.Title + " " + item.Content)
	hits := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			hits++
		}
	}
	return float64(hits) / float64(len(terms))
}
