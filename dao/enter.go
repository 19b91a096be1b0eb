package dao

import (
	"errors"
	"fmt"

	"gitee.com/taoJie_1/support-chat/model/enum"
	"github.com/jmoiron/sqlx"
)

var (
	DB      *sqlx.DB
	CanLock bool // 是否支持行锁(FOR UPDATE)
	utils   = new(dbUtils)
)

var ErrChatNotFound = errors.New("会话不存在")

// Tx 在事务中执行fc, fc返回错误或panic时回滚
func Tx(d *sqlx.DB, fc func(tx *sqlx.Tx) error) (err error) {
	tx, err := d.Beginx()
	if err != nil {
		return fmt.Errorf("开启事务失败[xk2mfa]: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = errors.Join(err, rbErr)
			}
			return
		}
		err = tx.Commit()
	}()

	return fc(tx)
}

var migrations = map[enum.DbType][]string{
	enum.SQLITE: {
		"CREATE TABLE IF NOT EXISTS `chats` (" +
			"`id` TEXT PRIMARY KEY NOT NULL," +
			"`metadata` TEXT NOT NULL DEFAULT '{}'," +
			"`created_at` INTEGER NOT NULL DEFAULT 0," +
			"`updated_at` INTEGER NOT NULL DEFAULT 0)",
		"CREATE TABLE IF NOT EXISTS `chat_messages` (" +
			"`id` INTEGER PRIMARY KEY AUTOINCREMENT," +
			"`chat_id` TEXT NOT NULL," +
			"`role` TEXT NOT NULL," +
			"`content` TEXT NOT NULL," +
			"`metadata` TEXT NOT NULL DEFAULT '{}'," +
			"`created_at` INTEGER NOT NULL DEFAULT 0," +
			"`updated_at` INTEGER NOT NULL DEFAULT 0)",
		"CREATE INDEX IF NOT EXISTS `idx_chat_messages_chat` ON `chat_messages` (`chat_id`, `created_at`, `id`)",
		"CREATE INDEX IF NOT EXISTS `idx_chats_updated` ON `chats` (`updated_at`)",
	},
	enum.MYSQL: {
		"CREATE TABLE IF NOT EXISTS `chats` (" +
			"`id` VARCHAR(36) NOT NULL," +
			"`metadata` TEXT NOT NULL," +
			"`created_at` BIGINT NOT NULL DEFAULT 0," +
			"`updated_at` BIGINT NOT NULL DEFAULT 0," +
			"PRIMARY KEY (`id`)," +
			"KEY `idx_chats_updated` (`updated_at`)" +
			") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		"CREATE TABLE IF NOT EXISTS `chat_messages` (" +
			"`id` INT UNSIGNED NOT NULL AUTO_INCREMENT," +
			"`chat_id` VARCHAR(36) NOT NULL," +
			"`role` VARCHAR(16) NOT NULL," +
			"`content` MEDIUMTEXT NOT NULL," +
			"`metadata` TEXT NOT NULL," +
			"`created_at` BIGINT NOT NULL DEFAULT 0," +
			"`updated_at` BIGINT NOT NULL DEFAULT 0," +
			"PRIMARY KEY (`id`)," +
			"KEY `idx_chat_messages_chat` (`chat_id`, `created_at`, `id`)" +
			") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	},
}

// AutoMigrate 建表, 已存在则跳过
func AutoMigrate(d *sqlx.DB, dbType enum.DbType) error {
	stmts, ok := migrations[dbType]
	if !ok {
		return fmt.Errorf("数据库类型错误[rjfsos]: %s", dbType)
	}
	for _, s := range stmts {
		if _, err := d.Exec(s); err != nil {
			return fmt.Errorf("建表失败[m8qpzd]: %w", err)
		}
	}
	return nil
}
