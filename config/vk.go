package config

import "time"

// VK users.get 設定
type VK struct {
	BaseURL     string        `mapstructure:"BASE_URL" json:"baseUrl" yaml:"baseUrl"`
	AccessToken string        `mapstructure:"ACCESS_TOKEN" json:"accessToken" yaml:"accessToken"`
	APIVersion  string        `mapstructure:"API_VERSION" json:"apiVersion" yaml:"apiVersion"`
	Lang        string        `mapstructure:"LANG" json:"lang" yaml:"lang"`
	Timeout     time.Duration `mapstructure:"TIMEOUT" json:"timeout" yaml:"timeout"`
	RetryCount  int           `mapstructure:"RETRY_COUNT" json:"retryCount" yaml:"retryCount"`
}
