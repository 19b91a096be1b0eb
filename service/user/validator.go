package user

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gitee.com/taoJie_1/support-chat/model/dto"
)

var (
	ErrEmptyContent   = errors.New("消息内容不能为空")
	ErrContentTooLong = errors.New("消息内容过长")
)

type IValidator interface {
	ValidatorChatMessageRequest(data *dto.ChatMessageRequest) error
}

type Validator struct {
	MaxContentLength uint // 按字符计, 0表示不限制
}

func (v *Validator) ValidatorChatMessageRequest(data *dto.ChatMessageRequest) error {
	if data == nil || strings.TrimSpace(data.Content) == "" {
		return ErrEmptyContent
	}
	if v.MaxContentLength > 0 && uint(utf8.RuneCountInString(data.Content)) > v.MaxContentLength {
		return ErrContentTooLong
	}
	return nil
}
