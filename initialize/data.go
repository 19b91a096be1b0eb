package initialize

import (
	"fmt"

	"gitee.com/taoJie_1/support-chat/global"
	"gitee.com/taoJie_1/support-chat/internal/knowledge"
)

// loadData 加载知识库, 未配置文件时使用内置条目
func (i *Initializer) loadData() error {
	path := global.Config.Knowledge.Path
	if path == "" {
		i.knowledge = knowledge.Default()
		global.Log.Infof("使用内置知识库, 共 %d 条", i.knowledge.Len())
		return nil
	}

	store, err := knowledge.LoadFile(path)
	if err != nil {
		return fmt.Errorf("加载知识库失败[p7xk2e]: %s: %w", path, err)
	}
	i.knowledge = store
	global.Log.Infof("加载知识库 %s 成功, 共 %d 条", path, store.Len())
	return nil
}
