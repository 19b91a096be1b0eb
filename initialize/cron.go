package initialize

import (
	"runtime"

	"gitee.com/taoJie_1/support-chat/global"
	"gitee.com/taoJie_1/support-chat/task"
	"github.com/robfig/cron/v3"
)

func (i *Initializer) timerStart(taskManager *task.Manager) error {
	i.cron = cron.New([]cron.Option{
		cron.WithLocation(global.Tz),
	}...)

	if err := i.startCronJob("cleanup_logs", taskManager.CleanUpLogs, "0 3 * * *"); err != nil {
		return err
	}
	if err := i.startCronJob("prune_chats", taskManager.PruneStaleChats, "0 4 * * *"); err != nil {
		return err
	}

	i.cron.Start() //已含协程
	global.Log.Infoln("定时器启动成功")
	return nil
}

func (i *Initializer) timerStop() {
	if i.cron == nil {
		return
	}
	<-i.cron.Stop().Done()
	global.Log.Infoln("定时器停止成功")
}

// 启动一个新的定时任务, 任务出错只记录日志, 不影响服务
func (i *Initializer) startCronJob(name string, task func() error, schedule string) error {
	_, err := i.cron.AddFunc(schedule, func() {
		defer func() {
			if p := recover(); p != nil {
				buf := make([]byte, 4096)
				buf = buf[:runtime.Stack(buf, false)]
				global.Log.Errorf("定时任务 %s panic[c8dj2s]: %v\n%s", name, p, buf)
			}
		}()
		if err := task(); err != nil {
			global.Log.Errorf("定时任务 %s 执行失败: %v", name, err)
		}
	})
	return err
}
