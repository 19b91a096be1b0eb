package global

import (
	"time"

	"gitee.com/taoJie_1/support-chat/internal/llm"
	"gitee.com/taoJie_1/support-chat/internal/oss"
	"gitee.com/taoJie_1/support-chat/internal/redis"
	"gitee.com/taoJie_1/support-chat/model/config"
	"github.com/sirupsen/logrus"
)

// 全局变量
// 业务逻辑禁止修改
var (
	Config      *config.Config = new(config.Config) //指针类型, 给与其内存空间
	Log         *logrus.Logger = logrus.New()
	Tz          *time.Location = time.Local
	Version     string         = "dev"
	LlmService  llm.Service
	RedisClient redis.Service
	OssService  oss.Service
)
