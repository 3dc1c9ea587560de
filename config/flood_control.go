package config

import "time"

type FloodControl struct {
	// 同一使用者兩次新增（疾病/過敏原）之間的最短間隔
	Window time.Duration `mapstructure:"WINDOW" json:"window" yaml:"window"`
}
