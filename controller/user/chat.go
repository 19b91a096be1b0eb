package user

import (
	"errors"
	"io"
	"net/http"

	"gitee.com/taoJie_1/support-chat/model/common"
	"gitee.com/taoJie_1/support-chat/model/dto"
	"gitee.com/taoJie_1/support-chat/service"
	"github.com/gin-gonic/gin"
)

type ChatApi struct{}

func (d *ChatApi) CreateChat(ctx *gin.Context) {
	var req dto.CreateChatRequest
	// 请求体可为空
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		common.FailStatus(ctx, http.StatusBadRequest, "参数无效")
		return
	}

	session, err := service.Service.UserServiceGroup().ChatService.CreateChat(ctx.Request.Context(), req.Metadata)
	if err != nil {
		failWith(ctx, err)
		return
	}
	common.Success(ctx, session)
}

func (d *ChatApi) GetChat(ctx *gin.Context) {
	session, err := service.Service.UserServiceGroup().ChatService.GetChat(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		failWith(ctx, err)
		return
	}
	common.Success(ctx, session)
}

func (d *ChatApi) ListMessages(ctx *gin.Context) {
	history, err := service.Service.UserServiceGroup().ChatService.ListMessages(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		failWith(ctx, err)
		return
	}
	common.Success(ctx, history)
}

func (d *ChatApi) AddMessage(ctx *gin.Context) {
	var req dto.ChatMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.FailStatus(ctx, http.StatusBadRequest, "参数无效")
		return
	}

	res, err := service.Service.UserServiceGroup().ChatService.HandleNewMessage(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		failWith(ctx, err)
		return
	}
	common.Success(ctx, res)
}

func (d *ChatApi) DeleteChat(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := service.Service.UserServiceGroup().ChatService.DeleteChat(ctx.Request.Context(), id); err != nil {
		failWith(ctx, err)
		return
	}
	common.SuccessOk(ctx, "Chat "+id+" deleted successfully")
}
