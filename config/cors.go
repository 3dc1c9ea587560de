package config

import "time"

type Cors struct {
	// 空值或含 "*" 時允許所有來源
	AllowOrigins []string      `mapstructure:"ALLOW_ORIGINS" json:"allowOrigins" yaml:"allowOrigins"`
	MaxAge       time.Duration `mapstructure:"MAX_AGE" json:"maxAge" yaml:"maxAge"`
}
