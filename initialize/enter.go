package initialize

import (
	"context"
	"io"
	"net/http"
	"sync"

	"gitee.com/taoJie_1/support-chat/dao"
	"gitee.com/taoJie_1/support-chat/global"
	"gitee.com/taoJie_1/support-chat/internal/knowledge"
	"gitee.com/taoJie_1/support-chat/service"
	"gitee.com/taoJie_1/support-chat/task"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// Initializer 统一管理项目的所有初始化工作
type Initializer struct {
	cron           *cron.Cron
	reloadLock     sync.Mutex
	logFileClosers []io.Closer
	knowledge      *knowledge.Store
	mcpHandler     http.Handler
}

// Run 并发执行所有核心服务的初始化
func (i *Initializer) Run() error {
	eg, _ := errgroup.WithContext(context.Background())

	// 关键任务，失败会终止程序
	eg.Go(i.dbStart)
	eg.Go(i.loadData)

	// 非关键任务，失败只打印日志，不影响启动
	eg.Go(func() error {
		i.initLlm()
		return nil
	})
	eg.Go(func() error {
		i.initRedis()
		return nil
	})
	eg.Go(func() error {
		i.initOss()
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}

	i.initServices()
	return nil
}

// Close 优雅地关闭和释放所有资源
func (i *Initializer) Close() {
	i.timerStop()
	if err := i.redisClose(); err != nil {
		global.Log.Warnf("关闭Redis客户端失败: %v", err)
	}
	if err := i.ossClose(); err != nil {
		global.Log.Warnf("关闭OSS客户端失败: %v", err)
	}
	if err := i.dbClose(); err != nil {
		global.Log.Warnf("关闭数据库失败: %v", err)
	}
	for _, c := range i.logFileClosers {
		_ = c.Close()
	}
}

// TaskManager 创建后台任务管理器
func (i *Initializer) TaskManager() *task.Manager {
	return task.NewManager(dao.NewChatDb(dao.DB), chatRemover{})
}

// StartSystem 启动系统级服务，如定时器
func (i *Initializer) StartSystem(taskManager *task.Manager) {
	if err := i.timerStart(taskManager); err != nil {
		panic(err)
	}
}

// chatRemover 每次调用时取当前服务组, 热重载后仍有效
type chatRemover struct{}

func (chatRemover) DeleteChat(ctx context.Context, chatId string) error {
	return service.Service.UserServiceGroup().ChatService.DeleteChat(ctx, chatId)
}
