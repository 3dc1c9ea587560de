package config

type Cron struct {
	// 空字串代表不啟用
	ProfileSyncSpec string `mapstructure:"PROFILE_SYNC_SPEC" json:"profileSyncSpec" yaml:"profileSyncSpec"`
	ProfileSyncSize int64  `mapstructure:"PROFILE_SYNC_SIZE" json:"profileSyncSize" yaml:"profileSyncSize"`
}
