package config

type RateLimit struct {
	Enabled bool `mapstructure:"ENABLED" json:"enabled" yaml:"enabled"`
	// 每個視窗內允許的查詢次數
	Limit int `mapstructure:"LIMIT" json:"limit" yaml:"limit"`
	// 視窗長度（秒）
	WindowSeconds int64 `mapstructure:"WINDOW_SECONDS" json:"windowSeconds" yaml:"windowSeconds"`
}
