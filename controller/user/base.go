package user

import (
	"errors"
	"net/http"

	"gitee.com/taoJie_1/support-chat/dao"
	"gitee.com/taoJie_1/support-chat/global"
	"gitee.com/taoJie_1/support-chat/model/common"
	"gitee.com/taoJie_1/support-chat/service/user"
	"github.com/gin-gonic/gin"
)

type BaseApi struct{}

func (b *BaseApi) Hello(ctx *gin.Context) {
	common.Success(ctx, gin.H{"message": "Hello from the Customer Support Chat API!"})
}

// failWith 将业务错误映射为HTTP状态码
func failWith(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrEmptyContent), errors.Is(err, user.ErrContentTooLong):
		common.FailStatus(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, dao.ErrChatNotFound):
		common.FailStatus(ctx, http.StatusNotFound, err.Error())
	default:
		global.Log.WithField("path", ctx.FullPath()).Errorf("请求处理失败: %v", err)
		common.FailStatus(ctx, http.StatusInternalServerError, "服务暂不可用, 请稍后再试")
	}
}
