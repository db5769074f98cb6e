package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/shouni/gig-thumbnail-kit/pkg/generator"
)

// Config はファイル・環境変数・フラグから読み込む設定です。
type Config struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
	Log    LogConfig    `mapstructure:"log"`
}

// GeminiConfig は生成サービスの設定です。
type GeminiConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	AspectRatio    string `mapstructure:"aspect_ratio"`
	PromptTemplate string `mapstructure:"prompt_template"` // 空なら埋め込みテンプレート
}

// LogConfig はログ出力の設定です。
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// SlogLevel は Level を slog.Level に変換します。
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("不正なログレベルです: %q", l.Level)
	}
	return level, nil
}

// flagKeys はフラグ名と設定キーの対応です。
var flagKeys = map[string]string{
	"model":           "gemini.model",
	"aspect-ratio":    "gemini.aspect_ratio",
	"prompt-template": "gemini.prompt_template",
	"log-level":       "log.level",
	"log-json":        "log.json",
}

// RegisterFlags は設定に対応するフラグを flags に追加します。
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "設定ファイルのパス (yaml/json/toml)")
	flags.String("model", "", "使用するモデル名")
	flags.String("aspect-ratio", "", "出力画像のアスペクト比")
	flags.String("prompt-template", "", "指示文テンプレートのパス")
	flags.String("log-level", "", "ログレベル (debug, info, warn, error)")
	flags.Bool("log-json", false, "ログを JSON で出力する")
}

// Load は既定値、設定ファイル、環境変数、フラグの順に設定を重ねて読み込みます。
// flags は nil でも構いません。
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if flags != nil {
		if path, _ := flags.GetString("config"); path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gemini.model", generator.DefaultModel)
	v.SetDefault("gemini.aspect_ratio", generator.DefaultAspectRatio)
	v.SetDefault("gemini.prompt_template", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string][]string{
		// API_KEY は旧来の名前。GEMINI_API_KEY が優先される。
		"gemini.api_key":         {"GEMINI_API_KEY", "API_KEY"},
		"gemini.model":           {"THUMBGEN_MODEL"},
		"gemini.aspect_ratio":    {"THUMBGEN_ASPECT_RATIO"},
		"gemini.prompt_template": {"THUMBGEN_PROMPT_TEMPLATE"},
		"log.level":              {"THUMBGEN_LOG_LEVEL"},
		"log.json":               {"THUMBGEN_LOG_JSON"},
	}

	for key, envs := range mappings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, strings.Join(envs, ","), err)
		}
	}
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s to %s: %w", name, key, err)
		}
	}
	return nil
}

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.Gemini.APIKey) == "" {
		return errors.New("GEMINI_API_KEY is required")
	}
	if cfg.Gemini.Model == "" {
		return errors.New("gemini model is required")
	}
	if !validAspectRatio(cfg.Gemini.AspectRatio) {
		return fmt.Errorf("invalid aspect ratio: %q", cfg.Gemini.AspectRatio)
	}
	if _, err := cfg.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// validAspectRatio は "W:H" 形式かどうかを確認します。
func validAspectRatio(s string) bool {
	w, h, ok := strings.Cut(s, ":")
	return ok && isDigits(w) && isDigits(h)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
