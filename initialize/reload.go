package initialize

import (
	"context"
	"reflect"
	"strings"

	"gitee.com/taoJie_1/support-chat/global"
	"gitee.com/taoJie_1/support-chat/model/config"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// HandleConfigChange 检测配置变化并并发地重载相关服务
// 客户端重载完成后统一重建服务组
func (i *Initializer) HandleConfigChange(oldConfig, newConfig *config.Config) {
	i.reloadLock.Lock()
	defer i.reloadLock.Unlock()

	var restartNeeded []string

	// --- 1. 检查不可热重载的配置 ---
	if !reflect.DeepEqual(oldConfig.Database, newConfig.Database) {
		restartNeeded = append(restartNeeded, "database")
	}
	if oldConfig.GinAddr != newConfig.GinAddr {
		restartNeeded = append(restartNeeded, "gin_addr")
	}
	if oldConfig.GinLogPath != newConfig.GinLogPath || oldConfig.RunLogPath != newConfig.RunLogPath {
		restartNeeded = append(restartNeeded, "log_path")
	}
	if oldConfig.Knowledge != newConfig.Knowledge {
		restartNeeded = append(restartNeeded, "knowledge")
	}
	if oldConfig.Mcp != newConfig.Mcp {
		restartNeeded = append(restartNeeded, "mcp")
	}
	if !reflect.DeepEqual(oldConfig.Cors, newConfig.Cors) {
		restartNeeded = append(restartNeeded, "cors")
	}

	// --- 2. 并发执行可热重载的任务 ---
	eg, _ := errgroup.WithContext(context.Background())
	rebuild := oldConfig.Ai != newConfig.Ai

	// 旧客户端在新服务组生效后再关闭
	oldRedis, oldOss := global.RedisClient, global.OssService

	if oldConfig.Tz != newConfig.Tz {
		rebuild = true
		eg.Go(func() error {
			if err := i.InitTz(); err != nil {
				global.Log.Errorf("热重载时区失败: %v", err)
				return err
			}
			return nil
		})
	}

	if oldConfig.Redis != newConfig.Redis {
		rebuild = true
		eg.Go(func() error {
			if err := i.initRedis(); err != nil {
				global.Log.Errorf("热重载Redis客户端失败: %v", err)
				return err
			}
			return nil
		})
	}

	if !reflect.DeepEqual(oldConfig.Llm, newConfig.Llm) {
		rebuild = true
		eg.Go(func() error {
			if err := i.initLlm(); err != nil {
				global.Log.Errorf("热重载LLM服务失败: %v", err)
				return err
			}
			return nil
		})
	}

	if oldConfig.Oss != newConfig.Oss {
		rebuild = true
		eg.Go(func() error {
			if err := i.initOss(); err != nil {
				global.Log.Errorf("热重载OSS客户端失败: %v", err)
				return err
			}
			return nil
		})
	}

	if oldConfig.Debug != newConfig.Debug {
		if newConfig.Debug {
			global.Log.SetLevel(logrus.DebugLevel)
		} else {
			global.Log.SetLevel(logrus.InfoLevel)
		}
	}

	if err := eg.Wait(); err != nil {
		global.Log.Errorf("并发热重载过程中发生错误: %v", err)
	}

	// 服务组持有各客户端的引用, 需要在客户端重载后重建
	if rebuild {
		i.initServices()
	}
	if oldRedis != nil && oldRedis != global.RedisClient {
		if err := oldRedis.Close(); err != nil {
			global.Log.Warnf("关闭旧Redis客户端失败: %v", err)
		}
	}
	if oldOss != nil && oldOss != global.OssService {
		if err := oldOss.Close(); err != nil {
			global.Log.Warnf("关闭旧OSS客户端失败: %v", err)
		}
	}

	// --- 3. 如果有需要重启的变更，发出统一警告 ---
	if len(restartNeeded) > 0 {
		global.Log.Warnf("检测到存在需要 重启服务 才能生效的配置变更: [%s]。", strings.Join(restartNeeded, ", "))
	}

	global.Log.Info("配置变更处理完成")
}
