package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig          `mapstructure:"server"`
	Database DatabaseConfig        `mapstructure:"database"`
	Redis    RedisConfig           `mapstructure:"redis"`
	Queue    QueueConfig           `mapstructure:"queue"`
	CORS     CORSConfig            `mapstructure:"cors"`
	Plans    map[string]PlanPolicy `mapstructure:"plans"`
	AI       AIConfig              `mapstructure:"ai"`
	GitHub   GitHubConfig          `mapstructure:"github"`
	Cleanup  CleanupConfig         `mapstructure:"cleanup"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type QueueConfig struct {
	TriggerQueue string `mapstructure:"trigger_queue"`
	MaxWorkers   int    `mapstructure:"max_workers"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// PlanPolicy 套餐策略：回溯窗口和分析量上限
type PlanPolicy struct {
	WindowDays        int `mapstructure:"window_days"`
	MaxCommits        int `mapstructure:"max_commits"`
	MaxFilesPerCommit int `mapstructure:"max_files_per_commit"`
	MaxRepositories   int `mapstructure:"max_repositories"`
}

type AIConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

type GitHubConfig struct {
	Token   string `mapstructure:"token"`
	BaseURL string `mapstructure:"base_url"`
}

type CleanupConfig struct {
	StaleJobHours    int `mapstructure:"stale_job_hours"`
	JobRetentionDays int `mapstructure:"job_retention_days"`
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	// 检查 config.local.yaml 是否存在
	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 环境变量覆盖
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults 填充缺省配置
func applyDefaults(cfg *Config) {
	if cfg.Queue.TriggerQueue == "" {
		cfg.Queue.TriggerQueue = "profile_analysis_triggers"
	}
	if cfg.Queue.MaxWorkers <= 0 {
		cfg.Queue.MaxWorkers = 4
	}
	if cfg.Cleanup.StaleJobHours <= 0 {
		cfg.Cleanup.StaleJobHours = 2
	}
	if cfg.Cleanup.JobRetentionDays <= 0 {
		cfg.Cleanup.JobRetentionDays = 90
	}
	if cfg.Plans == nil {
		cfg.Plans = map[string]PlanPolicy{}
	}
	// 保证 free 档位始终存在，作为未知套餐的兜底
	if _, ok := cfg.Plans["free"]; !ok {
		cfg.Plans["free"] = PlanPolicy{
			WindowDays:        90,
			MaxCommits:        500,
			MaxFilesPerCommit: 20,
			MaxRepositories:   5,
		}
	}
	if _, ok := cfg.Plans["premium"]; !ok {
		cfg.Plans["premium"] = PlanPolicy{
			WindowDays:        365,
			MaxCommits:        5000,
			MaxFilesPerCommit: 100,
			MaxRepositories:   30,
		}
	}
	if _, ok := cfg.Plans["enterprise"]; !ok {
		cfg.Plans["enterprise"] = PlanPolicy{
			WindowDays:        730,
			MaxCommits:        20000,
			MaxFilesPerCommit: 200,
			MaxRepositories:   100,
		}
	}
}
