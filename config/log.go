package config

type Log struct {
	// debug / info / warn / error / dpanic / panic / fatal，設定重載時即時生效
	Level string `mapstructure:"LEVEL" json:"level" yaml:"level"`
	// json（預設）或 console
	Encoding string `mapstructure:"ENCODING" json:"encoding" yaml:"encoding"`
}
