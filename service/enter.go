package service

import (
	"sync/atomic"

	"gitee.com/taoJie_1/support-chat/service/user"
)

type ServiceGroup struct {
	userServiceGroup atomic.Pointer[user.ServiceGroup]
}

var Service = new(ServiceGroup)

// UserServiceGroup 返回当前的用户服务组, 热重载时整体替换
func (s *ServiceGroup) UserServiceGroup() *user.ServiceGroup {
	return s.userServiceGroup.Load()
}

func (s *ServiceGroup) SetUserServiceGroup(g user.ServiceGroup) {
	s.userServiceGroup.Store(&g)
}
