// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"go_5_vocab_hint/internal/model"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Policy  PolicyConfig  `mapstructure:"policy"`
	Storage StorageConfig `mapstructure:"storage"`
	Catalog CatalogConfig `mapstructure:"catalog"`

	// 設定ファイルが見つかったディレクトリ (相対パスの基準)
	BaseDir string `mapstructure:"-"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// PolicyConfig はヒント選択ポリシーのハイパーパラメータ (起動時に一度だけ読み込む)
type PolicyConfig struct {
	HintTypes       []string      `mapstructure:"hint_types" validate:"required,min=1,unique,dive,required,max=64"`
	LearningRate    float64       `mapstructure:"learning_rate" validate:"gte=0,lte=1"`
	DiscountFactor  float64       `mapstructure:"discount_factor" validate:"gte=0,lte=1"` // 将来のマルチステップ拡張用 (現在は未使用)
	ExplorationRate float64       `mapstructure:"exploration_rate" validate:"gte=0,lte=1"`
	InitialQValue   float64       `mapstructure:"initial_q_value"`
	Rewards         RewardsConfig `mapstructure:"rewards"`
}

type RewardsConfig struct {
	Correct   float64 `mapstructure:"correct"`
	Incorrect float64 `mapstructure:"incorrect"`
}

// StorageConfig は Q テーブルの保存先
type StorageConfig struct {
	Backend     string `mapstructure:"backend" validate:"oneof=file sql"`
	QTableFile  string `mapstructure:"q_table_file"`
	DatabaseURL string `mapstructure:"database_url"`
}

type CatalogConfig struct {
	WordsFile string `mapstructure:"words_file"`
}

// HintTypeList は設定されたヒント種別を model.HintType に変換します
func (p PolicyConfig) HintTypeList() []model.HintType {
	out := make([]model.HintType, 0, len(p.HintTypes))
	for _, h := range p.HintTypes {
		out = append(out, model.HintType(h))
	}
	return out
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("log.level", DefaultLogLevel)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type"})
	v.SetDefault("cors.max_age", 300)

	hints := make([]string, 0, 4)
	for _, h := range model.DefaultHintTypes() {
		hints = append(hints, string(h))
	}
	v.SetDefault("policy.hint_types", hints)
	v.SetDefault("policy.learning_rate", DefaultLearningRate)
	v.SetDefault("policy.discount_factor", DefaultDiscountFactor)
	v.SetDefault("policy.exploration_rate", DefaultExplorationRate)
	v.SetDefault("policy.initial_q_value", DefaultInitialQValue)
	v.SetDefault("policy.rewards.correct", DefaultRewardCorrect)
	v.SetDefault("policy.rewards.incorrect", DefaultRewardIncorrect)

	v.SetDefault("storage.backend", DefaultStorageBackend)
	v.SetDefault("storage.q_table_file", DefaultQTableFile)
	v.SetDefault("storage.database_url", "")

	v.SetDefault("catalog.words_file", DefaultWordsFile)
}

// LoadConfig は path (と カレントディレクトリ) から config.yaml を読み込みます。
// ファイルが無い場合はデフォルト値と環境変数 (APP_ 接頭辞) だけで構成します。
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")

	// 例: APP_POLICY_LEARNING_RATE=0.1
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	baseDir := path
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		slog.Warn("Config file not found. Using default settings and environment variables.", slog.String("path", path))
	} else {
		baseDir = filepath.Dir(v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.BaseDir = baseDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Info("Config loaded successfully",
		slog.String("file", v.ConfigFileUsed()),
		slog.String("port", cfg.Server.Port),
		slog.Any("hint_types", cfg.Policy.HintTypes),
		slog.Float64("learning_rate", cfg.Policy.LearningRate),
		slog.Float64("exploration_rate", cfg.Policy.ExplorationRate),
		slog.String("storage_backend", cfg.Storage.Backend),
	)
	return &cfg, nil
}

// Validate はハイパーパラメータと保存先の整合性を確認します
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c.Policy); err != nil {
		return fmt.Errorf("invalid policy config: %w", err)
	}
	if err := validate.Struct(c.Storage); err != nil {
		return fmt.Errorf("invalid storage config: %w", err)
	}
	if c.Storage.Backend == "sql" && c.Storage.DatabaseURL == "" {
		return fmt.Errorf("invalid storage config: database_url is required for the sql backend")
	}
	return nil
}

// ResolvePath は設定ファイルのディレクトリを基準に相対パスを解決します
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}
