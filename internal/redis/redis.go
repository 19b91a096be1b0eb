package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gitee.com/taoJie_1/support-chat/model/common"
	"github.com/go-redis/redis/v8"
)

const (
	KeyPrefixHistory     = "support_chat:history:"
	KeyPrefixHistoryLock = "support_chat:lock:history:"
)

// ErrNil 缓存未命中
var ErrNil = redis.Nil

// Service 定义了Redis操作的接口
type Service interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error

	// GetConversationHistory 读取会话历史, 未缓存时返回 ErrNil
	GetConversationHistory(ctx context.Context, chatId string) ([]common.LlmMessage, error)
	// SetConversationHistory 覆盖会话历史
	SetConversationHistory(ctx context.Context, chatId string, history []common.LlmMessage, ttl time.Duration) error
	// AppendToConversationHistory 仅在缓存存在时追加, 避免写出不完整的历史
	AppendToConversationHistory(ctx context.Context, chatId string, ttl time.Duration, messages ...common.LlmMessage) error
	// DelConversationHistory 删除会话历史缓存
	DelConversationHistory(ctx context.Context, chatId string) error
}

type client struct {
	rdb *redis.Client
}

// NewClient 创建一个新的Redis客户端实例
func NewClient(addr, password string, db int) (Service, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: 10, // 连接池大小
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("连接Redis失败: %w", err)
	}

	return &client{rdb: rdb}, nil
}

func HistoryKey(chatId string) string {
	return KeyPrefixHistory + chatId
}

func HistoryLockKey(chatId string) string {
	return KeyPrefixHistoryLock + chatId
}

func (c *client) Get(ctx context.Context, key string) *redis.StringCmd {
	return c.rdb.Get(ctx, key)
}

func (c *client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return c.rdb.Set(ctx, key, value, expiration)
}

func (c *client) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return c.rdb.Del(ctx, keys...)
}

func (c *client) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	return c.rdb.SetNX(ctx, key, value, expiration)
}

func (c *client) Ping(ctx context.Context) *redis.StatusCmd {
	return c.rdb.Ping(ctx)
}

func (c *client) Close() error {
	return c.rdb.Close()
}

func (c *client) GetConversationHistory(ctx context.Context, chatId string) ([]common.LlmMessage, error) {
	key := HistoryKey(chatId)
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNil
	}

	raws, err := c.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	history := make([]common.LlmMessage, 0, len(raws))
	for _, raw := range raws {
		var msg common.LlmMessage
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			return nil, fmt.Errorf("解析会话 %s 历史缓存失败: %w", chatId, err)
		}
		history = append(history, msg)
	}
	return history, nil
}

func (c *client) SetConversationHistory(ctx context.Context, chatId string, history []common.LlmMessage, ttl time.Duration) error {
	values, err := encodeMessages(history)
	if err != nil {
		return err
	}
	key := HistoryKey(chatId)
	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(values) > 0 {
			pipe.RPush(ctx, key, values...)
			if ttl > 0 {
				pipe.Expire(ctx, key, ttl)
			}
		}
		return nil
	})
	return err
}

func (c *client) AppendToConversationHistory(ctx context.Context, chatId string, ttl time.Duration, messages ...common.LlmMessage) error {
	if len(messages) == 0 {
		return nil
	}
	values, err := encodeMessages(messages)
	if err != nil {
		return err
	}
	key := HistoryKey(chatId)
	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPushX(ctx, key, values...)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	return err
}

func (c *client) DelConversationHistory(ctx context.Context, chatId string) error {
	return c.rdb.Del(ctx, HistoryKey(chatId), HistoryLockKey(chatId)).Err()
}

func encodeMessages(messages []common.LlmMessage) ([]interface{}, error) {
	values := make([]interface{}, 0, len(messages))
	for _, m := range messages {
		b, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		values = append(values, string(b))
	}
	return values, nil
}
