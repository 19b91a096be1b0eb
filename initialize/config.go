package initialize

import (
	"flag"
	"fmt"

	"gitee.com/taoJie_1/support-chat/global"
	"gitee.com/taoJie_1/support-chat/model/config"
	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

var (
	Conf string
	Act  string
)

func init() {
	flag.StringVar(&Conf, "c", "", "choose config file.")
	flag.StringVar(&Act, "a", "", `行为,默认为空,即启动服务; "logs": 清理过期日志; "prune": 清理过期会话;`)
}

// New 创建一个新的初始化器，并加载配置文件
func New() *Initializer {
	var configPath string
	if gin.Mode() != gin.TestMode {
		flag.Parse()
		if Conf != "" {
			configPath = Conf
		}
	}
	if configPath == "" {
		configPath = `config.yaml`
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		panic("读取配置失败[u9ij]: " + configPath + err.Error())
	}

	if err := v.Unmarshal(global.Config); err != nil {
		panic("出错[dhfal]: " + err.Error())
	}
	handleConfig(global.Config)

	i := &Initializer{}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("配置文件变化[djiads]: ", e.Name)
		newConfig := new(config.Config)
		if err := v.Unmarshal(newConfig); err != nil {
			global.Log.Errorf("解析变更后的配置失败[k2v8sd]: %v", err)
			return
		}
		handleConfig(newConfig)

		oldConfig := global.Config.DeepCopy()
		*global.Config = *newConfig
		i.HandleConfigChange(oldConfig, newConfig)
	})

	return i
}

// handleConfig 处理和设置配置的默认值
func handleConfig(c *config.Config) {
	if c.ProjectName == "" {
		c.ProjectName = "support-chat"
	}
	if c.GinAddr == "" {
		c.GinAddr = ":80"
	}
	if c.GinLogPath == "" {
		c.GinLogPath = "log/gin.log"
	}
	if c.RunLogPath == "" {
		c.RunLogPath = "log/run.log"
	}
	if c.Tz == "" {
		c.Tz = "Asia/Shanghai"
	}
	if len(c.Cors) == 0 {
		c.Cors = []string{"*"}
	}
	if c.Database.Type == "" {
		c.Database.Type = "sqlite"
	}
	if c.Database.SqlitePath == "" {
		c.Database.SqlitePath = "data.db"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Redis.LockExpiry == 0 {
		c.Redis.LockExpiry = 30
	}
	if c.Redis.ConversationHistoryTTL == 0 {
		c.Redis.ConversationHistoryTTL = 3600 // 默认1小时
	}
	for i := range c.Llm {
		if c.Llm[i].Timeout == 0 {
			c.Llm[i].Timeout = 30
		}
	}
	if c.Ai.ClassifySize == "" {
		c.Ai.ClassifySize = "small"
	}
	if c.Ai.RespondSize == "" {
		c.Ai.RespondSize = "medium"
	}
	if c.Ai.MaxContentLength == 0 {
		c.Ai.MaxContentLength = 4000
	}
	if c.Mcp.Path == "" {
		c.Mcp.Path = "/mcp"
	}
	if c.Oss.StoragePath == "" {
		c.Oss.StoragePath = "transcripts/"
	}
}
