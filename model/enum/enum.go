package enum

type DbType string

const (
	MYSQL  DbType = `mysql`
	SQLITE DbType = `sqlite3`
)

type Msg string

const (
	DefaultSuccessMsg Msg = `ok`
	DefaultFailMsg    Msg = `错误`
)

type ResCode int8

const (
	SuccessCode   ResCode = 0
	ErrorCode     ResCode = 1
	AuthErrorCode ResCode = 2
)

type LlmSize string

const (
	ModelSmall  LlmSize = "small"
	ModelMedium LlmSize = "medium"
	ModelLarge  LlmSize = "large"
)

// Role 会话消息的角色
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Category 知识库条目的分类, 封闭集合
type Category string

const (
	CategoryTroubleshooting Category = "troubleshooting"
	CategoryPolicy          Category = "policy"
	CategoryService         Category = "service"
	CategoryParts           Category = "parts"
	CategorySafety          Category = "safety"
	CategorySupport         Category = "support"
)

var Categories = []Category{
	CategoryTroubleshooting,
	CategoryPolicy,
	CategoryService,
	CategoryParts,
	CategorySafety,
	CategorySupport,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Intent 用户意图, 封闭集合
type Intent string

const (
	IntentTroubleshooting Intent = "troubleshooting"
	IntentWarranty        Intent = "warranty"
	IntentReturnPolicy    Intent = "return_policy"
	IntentService         Intent = "service"
	IntentParts           Intent = "parts"
	IntentUnsupported     Intent = "unsupported"
)

var Intents = []Intent{
	IntentTroubleshooting,
	IntentWarranty,
	IntentReturnPolicy,
	IntentService,
	IntentParts,
	IntentUnsupported,
}

func (i Intent) Valid() bool {
	for _, v := range Intents {
		if v == i {
			return true
		}
	}
	return false
}

// intentCategories 可处理意图到知识库分类的映射
// unsupported 不在表内, 表示不按分类过滤
var intentCategories = map[Intent]Category{
	IntentTroubleshooting: CategoryTroubleshooting,
	IntentWarranty:        CategoryPolicy,
	IntentReturnPolicy:    CategoryPolicy,
	IntentService:         CategoryService,
	IntentParts:           CategoryParts,
}

// IntentCategory 返回意图对应的知识库分类; ok为false时应检索全部分类
func IntentCategory(i Intent) (Category, bool) {
	c, ok := intentCategories[i]
	return c, ok
}

// ParseIntent 解析外部传入的意图字符串, 空字符串视为 unsupported
func ParseIntent(s string) (Intent, bool) {
	if s == "" {
		return IntentUnsupported, true
	}
	i := Intent(s)
	return i, i.Valid()
}

type TraceName string

const (
	TraceCustomerSupportChat TraceName = "customer_support_chat"
	TraceDetermineIntent     TraceName = "determine_intent"
	TraceGenerateResponse    TraceName = "generate_response"
)
