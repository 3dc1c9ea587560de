package config

type Auth struct {
	// HS256 簽章用的密鑰
	JWTSecret string `mapstructure:"JWT_SECRET" json:"jwtSecret" yaml:"jwtSecret"`
	Issuer    string `mapstructure:"ISSUER" json:"issuer" yaml:"issuer"`
}
