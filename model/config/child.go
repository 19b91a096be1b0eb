package config

type Database struct {
	Type          string `json:"type" mapstructure:"type" yaml:"type"`
	SqlitePath    string `json:"sqlite_path" mapstructure:"sqlite_path" yaml:"sqlite_path"`
	MysqlHost     string `json:"mysql_host" mapstructure:"mysql_host" yaml:"mysql_host"`
	MysqlPort     string `json:"mysql_port" mapstructure:"mysql_port" yaml:"mysql_port"`
	MysqlDbname   string `json:"mysql_dbname" mapstructure:"mysql_dbname" yaml:"mysql_dbname"`
	MysqlUsername string `json:"mysql_username" mapstructure:"mysql_username" yaml:"mysql_username"`
	MysqlPassword string `json:"mysql_password" mapstructure:"mysql_password" yaml:"mysql_password"`
}

// Redis 过期时间单位均为秒
type Redis struct {
	Addr                   string `json:"addr" mapstructure:"addr" yaml:"addr"`
	Password               string `json:"password" mapstructure:"password" yaml:"password"`
	DB                     uint   `json:"db" mapstructure:"db" yaml:"db"`
	LockExpiry             int64  `json:"lock_expiry" mapstructure:"lock_expiry" yaml:"lock_expiry"`
	ConversationHistoryTTL int64  `json:"conversation_history_ttl" mapstructure:"conversation_history_ttl" yaml:"conversation_history_ttl"`
}

type Llm struct {
	Url         string   `json:"url" mapstructure:"url" yaml:"url"`
	Model       string   `json:"model" mapstructure:"model" yaml:"model"`
	Auth        string   `json:"auth" mapstructure:"auth" yaml:"auth"`
	Size        string   `json:"size" mapstructure:"size" yaml:"size"`
	Timeout     int64    `json:"timeout" mapstructure:"timeout" yaml:"timeout"`
	Temperature *float32 `json:"temperature" mapstructure:"temperature" yaml:"temperature"`
}

type Ai struct {
	ClassifySize      string `json:"classify_size" mapstructure:"classify_size" yaml:"classify_size"`
	RespondSize       string `json:"respond_size" mapstructure:"respond_size" yaml:"respond_size"`
	MaxContentLength  uint   `json:"max_content_length" mapstructure:"max_content_length" yaml:"max_content_length"`
	ChatRetentionDays uint   `json:"chat_retention_days" mapstructure:"chat_retention_days" yaml:"chat_retention_days"`
}

type Knowledge struct {
	// 为空时使用内置知识库
	Path string `json:"path" mapstructure:"path" yaml:"path"`
}

type Mcp struct {
	Enable bool   `json:"enable" mapstructure:"enable" yaml:"enable"`
	Path   string `json:"path" mapstructure:"path" yaml:"path"`
}

type Oss struct {
	Endpoint        string `json:"endpoint" mapstructure:"endpoint" yaml:"endpoint"`
	Bucket          string `json:"bucket" mapstructure:"bucket" yaml:"bucket"`
	AccessKeyId     string `json:"access_key_id" mapstructure:"access_key_id" yaml:"access_key_id"`
	AccessKeySecret string `json:"access_key_secret" mapstructure:"access_key_secret" yaml:"access_key_secret"`
	StoragePath     string `json:"storage_path" mapstructure:"storage_path" yaml:"storage_path"`
	CdnDomain       string `json:"cdn_domain" mapstructure:"cdn_domain" yaml:"cdn_domain"`
}
