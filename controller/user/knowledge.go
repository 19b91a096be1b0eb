package user

import (
	"net/http"

	"gitee.com/taoJie_1/support-chat/model/common"
	"gitee.com/taoJie_1/support-chat/model/dto"
	"gitee.com/taoJie_1/support-chat/model/enum"
	"gitee.com/taoJie_1/support-chat/service"
	"github.com/gin-gonic/gin"
)

type KnowledgeApi struct{}

// Search 按意图与关键词检索知识库, 不调用LLM
func (k *KnowledgeApi) Search(ctx *gin.Context) {
	var req dto.KnowledgeSearchRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		common.FailStatus(ctx, http.StatusBadRequest, "参数无效")
		return
	}
	intent, ok := enum.ParseIntent(req.Intent)
	if !ok {
		common.FailStatus(ctx, http.StatusBadRequest, "未知的意图: "+req.Intent)
		return
	}

	items := service.Service.UserServiceGroup().KnowledgeService.Retrieve(intent, req.Query)
	common.Success(ctx, dto.KnowledgeSearchResponse{Intent: string(intent), Items: items})
}
