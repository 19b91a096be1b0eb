package user

type ApiGroup struct {
	BaseApi
	ChatApi
	KnowledgeApi
}
