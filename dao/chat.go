package dao

import (
	"context"
	"fmt"
	"time"

	"gitee.com/taoJie_1/support-chat/model/db"
	"gitee.com/taoJie_1/support-chat/model/enum"
	"github.com/jmoiron/sqlx"
)

type ChatDb struct {
	db *sqlx.DB
}

func NewChatDb(d *sqlx.DB) *ChatDb {
	return &ChatDb{db: d}
}

// CreateChat 新建会话, 可同时写入首条消息
func (d *ChatDb) CreateChat(ctx context.Context, id string, metadata db.JSONMap, seed *db.ChatMessage) (*db.Chat, error) {
	now := time.Now().UnixMilli()
	chat := &db.Chat{Id: id, Metadata: metadata, CreatedAt: now, UpdatedAt: now}
	if chat.Metadata == nil {
		chat.Metadata = db.JSONMap{}
	}

	err := Tx(d.db, func(tx *sqlx.Tx) error {
		sql, args, err := utils.getBatchInsertSql(db.Chat{}, []map[string]interface{}{{
			"id":         chat.Id,
			"metadata":   chat.Metadata,
			"created_at": chat.CreatedAt,
			"updated_at": chat.UpdatedAt,
		}})
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, tx.Rebind(sql), args...); err != nil {
			return fmt.Errorf("创建会话失败[c0vhe1]: %w", err)
		}
		if seed != nil {
			seed.ChatId = id
			return d.insertMessage(ctx, tx, seed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chat, nil
}

func (d *ChatDb) GetChat(ctx context.Context, id string) (*db.Chat, error) {
	var chats []db.Chat
	sql := fmt.Sprintf("SELECT `id`, `metadata`, `created_at`, `updated_at` FROM `%s` WHERE `id` = ? LIMIT 1", db.Chat{}.TableName())
	if err := d.db.SelectContext(ctx, &chats, d.db.Rebind(sql), id); err != nil {
		return nil, fmt.Errorf("查询会话失败[qh1d8e]: %w", err)
	}
	if len(chats) == 0 {
		return nil, ErrChatNotFound
	}
	return &chats[0], nil
}

// AddMessage 追加消息并刷新会话的 updated_at
func (d *ChatDb) AddMessage(ctx context.Context, chatId string, role enum.Role, content string, metadata db.JSONMap) (*db.ChatMessage, error) {
	msg := &db.ChatMessage{
		ChatId:   chatId,
		Role:     string(role),
		Content:  content,
		Metadata: metadata,
	}

	err := Tx(d.db, func(tx *sqlx.Tx) error {
		if err := d.checkChat(ctx, tx, chatId); err != nil {
			return err
		}
		if err := d.insertMessage(ctx, tx, msg); err != nil {
			return err
		}
		sql, args := utils.getUpdateSql(db.Chat{}, "id", chatId, map[string]interface{}{
			"updated_at": msg.CreatedAt,
		})
		if _, err := tx.ExecContext(ctx, tx.Rebind(sql), args...); err != nil {
			return fmt.Errorf("更新会话时间失败[u7cw2n]: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessages 按 created_at, id 升序返回会话的全部消息
func (d *ChatDb) ListMessages(ctx context.Context, chatId string) ([]db.ChatMessage, error) {
	if _, err := d.GetChat(ctx, chatId); err != nil {
		return nil, err
	}

	list := make([]db.ChatMessage, 0)
	sql := fmt.Sprintf("SELECT `id`, `chat_id`, `role`, `content`, `metadata`, `created_at`, `updated_at` FROM `%s` WHERE `chat_id` = ? ORDER BY `created_at` ASC, `id` ASC", db.ChatMessage{}.TableName())
	if err := d.db.SelectContext(ctx, &list, d.db.Rebind(sql), chatId); err != nil {
		return nil, fmt.Errorf("查询消息失败[bz90wl]: %w", err)
	}
	return list, nil
}

// DeleteChat 删除会话及其消息
func (d *ChatDb) DeleteChat(ctx context.Context, chatId string) error {
	return Tx(d.db, func(tx *sqlx.Tx) error {
		if err := d.checkChat(ctx, tx, chatId); err != nil {
			return err
		}
		sql := fmt.Sprintf("DELETE FROM `%s` WHERE `chat_id` = ?", db.ChatMessage{}.TableName())
		if _, err := tx.ExecContext(ctx, tx.Rebind(sql), chatId); err != nil {
			return fmt.Errorf("删除消息失败[d1ve6s]: %w", err)
		}
		sql = fmt.Sprintf("DELETE FROM `%s` WHERE `id` = ?", db.Chat{}.TableName())
		if _, err := tx.ExecContext(ctx, tx.Rebind(sql), chatId); err != nil {
			return fmt.Errorf("删除会话失败[d1ve6t]: %w", err)
		}
		return nil
	})
}

// StaleChatIds 返回 updated_at 早于 before(毫秒) 的会话id
func (d *ChatDb) StaleChatIds(ctx context.Context, before int64, limit int) ([]string, error) {
	ids := make([]string, 0)
	sql := fmt.Sprintf("SELECT `id` FROM `%s` WHERE `updated_at` < ? ORDER BY `updated_at` ASC LIMIT ?", db.Chat{}.TableName())
	if err := d.db.SelectContext(ctx, &ids, d.db.Rebind(sql), before, limit); err != nil {
		return nil, fmt.Errorf("查询过期会话失败[p3ns0a]: %w", err)
	}
	return ids, nil
}

func (d *ChatDb) checkChat(ctx context.Context, tx *sqlx.Tx, chatId string) error {
	var n int
	sql := fmt.Sprintf("SELECT COUNT(1) FROM `%s` WHERE `id` = ?", db.Chat{}.TableName())
	if CanLock {
		sql += " FOR UPDATE"
	}
	if err := tx.GetContext(ctx, &n, tx.Rebind(sql), chatId); err != nil {
		return fmt.Errorf("查询会话失败[qh1d8f]: %w", err)
	}
	if n == 0 {
		return ErrChatNotFound
	}
	return nil
}

func (d *ChatDb) insertMessage(ctx context.Context, tx *sqlx.Tx, msg *db.ChatMessage) error {
	now := time.Now().UnixMilli()
	if msg.Metadata == nil {
		msg.Metadata = db.JSONMap{}
	}
	msg.CreatedAt, msg.UpdatedAt = now, now

	sql, args, err := utils.getBatchInsertSql(db.ChatMessage{}, []map[string]interface{}{{
		"chat_id":    msg.ChatId,
		"role":       msg.Role,
		"content":    msg.Content,
		"metadata":   msg.Metadata,
		"created_at": msg.CreatedAt,
		"updated_at": msg.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(sql), args...)
	if err != nil {
		return fmt.Errorf("写入消息失败[w4a8rk]: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("获取消息id失败: %w", err)
	}
	msg.Id = uint(id)
	return nil
}
