package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// KeyDelimiter 環境變數巢狀分隔，如 MONGODB__URI
const KeyDelimiter = "__"

// LoadOptions EnvFile 與 YAMLFile 同時指定時以 EnvFile 為準；皆空時只讀環境變數
type LoadOptions struct {
	RootPath string
	EnvFile  string
	// 相對路徑以 <RootPath>/conf 為基準
	YAMLFile string
	Watch    bool
	// Watch 時設定檔變更後呼叫；err 為重新解析失敗
	OnChange func(file string, err error)
}

// BindFlags 註冊 --env / --config
func (o *LoadOptions) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.EnvFile, "env", "e", "", "Environment file, e.g. --env .env")
	fs.StringVarP(&o.YAMLFile, "config", "c", "", "YAML config file under conf/, e.g. --config config.yaml")
}

var defaults = map[string]any{
	"APP__ENV":                   "development",
	"APP__PORT":                  3000,
	"APP__NAME":                  "medcard",
	"LOG__LEVEL":                 "info",
	"LOG__ENCODING":              "json",
	"MONGODB__DATABASE":          "medcard",
	"MONGODB__CONNECT_TIMEOUT":   "10s",
	"REDIS__KEY_PREFIX":          "medcard",
	"FLOOD_CONTROL__WINDOW":      "5s",
	"RATE_LIMIT__LIMIT":          60,
	"RATE_LIMIT__WINDOW_SECONDS": 60,
	"CRON__PROFILE_SYNC_SIZE":    200,
	"CORS__ALLOW_ORIGINS":        []string{"*"},
	"CORS__MAX_AGE":              "12h",
}

// Load 讀取設定檔與環境變數，環境變數優先
func Load(opts LoadOptions) (*Configuration, string, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", KeyDelimiter))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	file, fileType := resolveFile(opts)
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType(fileType)
		if err := v.ReadInConfig(); err != nil {
			return nil, file, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	bindEnvs(v, reflect.TypeOf(Configuration{}))

	conf := &Configuration{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, file, fmt.Errorf("unmarshal config: %w", err)
	}

	if file != "" && opts.Watch {
		v.OnConfigChange(func(in fsnotify.Event) {
			// 原地更新，已注入的 *Configuration 可看到新值
			err := v.Unmarshal(conf)
			if opts.OnChange != nil {
				opts.OnChange(in.Name, err)
			}
		})
		v.WatchConfig()
	}
	return conf, file, nil
}

func resolveFile(opts LoadOptions) (file, fileType string) {
	switch {
	case opts.EnvFile != "":
		file, fileType = opts.EnvFile, "env"
		if !filepath.IsAbs(file) {
			file = filepath.Join(opts.RootPath, file)
		}
	case opts.YAMLFile != "":
		file, fileType = opts.YAMLFile, "yaml"
		if !filepath.IsAbs(file) {
			file = filepath.Join(opts.RootPath, "conf", file)
		}
	}
	return file, fileType
}

// bindEnvs AutomaticEnv 不會替未出現在設定檔的 key 做 Unmarshal，逐欄綁定
func bindEnvs(v *viper.Viper, t reflect.Type, prefix ...string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("mapstructure")
		if name == "" || name == "-" {
			name = field.Name
		}
		key := append(append([]string{}, prefix...), name)
		fieldType := field.Type
		if fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}
		if fieldType.Kind() == reflect.Struct && fieldType.PkgPath() != "time" {
			bindEnvs(v, fieldType, key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, KeyDelimiter))
	}
}
