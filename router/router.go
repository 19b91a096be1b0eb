package router

import (
	"net/http"

	"gitee.com/taoJie_1/support-chat/controller"
	"gitee.com/taoJie_1/support-chat/global"
	"gitee.com/taoJie_1/support-chat/middleware"
	"gitee.com/taoJie_1/support-chat/model/common"

	"github.com/gin-gonic/gin"
)

// Start 注册路由, mcpHandler 为nil时不开启MCP
func Start(ginServer *gin.Engine, mcpHandler http.Handler) {
	ginServer.Use(middleware.CorsHandle(global.Config.Cors)) //全局中间件

	ginServer.NoRoute(func(ctx *gin.Context) {
		common.FailNotFound(ctx)
	})

	api := ginServer.Group("api")
	{
		api.GET("", controller.Api.UserApiGroup.Hello)

		api.POST("/chats", controller.Api.UserApiGroup.CreateChat)
		api.GET("/chats/:id", controller.Api.UserApiGroup.GetChat)
		api.DELETE("/chats/:id", controller.Api.UserApiGroup.DeleteChat)
		api.GET("/chats/:id/messages", controller.Api.UserApiGroup.ListMessages)
		api.POST("/chats/:id/messages", controller.Api.UserApiGroup.AddMessage)

		api.GET("/knowledge/search", controller.Api.UserApiGroup.Search)
	}

	if mcpHandler != nil {
		path := global.Config.Mcp.Path
		if path == "" {
			path = "/mcp"
		}
		ginServer.Any(path, gin.WrapH(mcpHandler))
	}
}
