package db

// Chat 会话
type Chat struct {
	Id        string  `db:"id" json:"id" info:"会话id(uuid)"`
	Metadata  JSONMap `db:"metadata" json:"metadata" info:"元数据"`
	CreatedAt int64   `db:"created_at" json:"created_at"`
	UpdatedAt int64   `db:"updated_at" json:"updated_at"`
}

func (Chat) TableName() string {
	return `chats`
}

// ChatMessage 会话消息, 同一会话按 created_at, id 升序即为因果顺序
type ChatMessage struct {
	BaseField
	ChatId   string  `db:"chat_id" json:"chat_id" info:"会话id"`
	Role     string  `db:"role" json:"role" info:"角色"`
	Content  string  `db:"content" json:"content" info:"内容"`
	Metadata JSONMap `db:"metadata" json:"metadata" info:"元数据"`
}

func (ChatMessage) TableName() string {
	return `chat_messages`
}
