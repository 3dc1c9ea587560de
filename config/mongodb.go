package config

import "time"

type MongoDB struct {
	URI      string `mapstructure:"URI" json:"uri" yaml:"uri"`
	Options  string `mapstructure:"OPTIONS" json:"options" yaml:"options"`
	Database string `mapstructure:"DATABASE" json:"database" yaml:"database"`
	// 0 表示用 driver 預設值
	MaxPoolSize    uint64        `mapstructure:"MAX_POOL_SIZE" json:"maxPoolSize" yaml:"maxPoolSize"`
	ConnectTimeout time.Duration `mapstructure:"CONNECT_TIMEOUT" json:"connectTimeout" yaml:"connectTimeout"`
	// 超過此時間的指令記 warn；0 不記錄
	SlowCommand time.Duration `mapstructure:"SLOW_COMMAND" json:"slowCommand" yaml:"slowCommand"`
}
