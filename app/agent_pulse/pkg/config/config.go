package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// 默认值，与原始抓取脚本保持一致
const (
	DefaultLLMBaseURL     = "https://models.inference.ai.azure.com"
	DefaultLLMModel       = "gpt-4o"
	DefaultTemperature    = 0.7
	DefaultLLMTimeout     = 120
	DefaultSearchProvider = "github"
	DefaultGitHubBaseURL  = "https://api.github.com"
	DefaultGitHubQuery    = "is:issue label:bounty,job state:open topic:ai,agents"
	DefaultPerPage        = 50
	DefaultSearchTimeout  = 30
	DefaultDataDir        = "data"
	DefaultBountiesFile   = "raw_bounties.json"
	DefaultReportFile     = "agent_pulse.json"
	DefaultDigestLimit    = 50
	DefaultScheduleSpec   = "@every 6h"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Search      SearchConfig      `yaml:"search"`
	Data        DataConfig        `yaml:"data"`
	Analyzer    AnalyzerConfig    `yaml:"analyzer"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Schedule    ScheduleConfig    `yaml:"schedule"`
}

// LLMConfig LLM 相关配置（任意 OpenAI 兼容接口）
type LLMConfig struct {
	BaseURL     string   `yaml:"base_url"`
	APIKey      string   `yaml:"api_key"`
	Model       string   `yaml:"model"`
	Temperature *float32 `yaml:"temperature"`
	Timeout     int      `yaml:"timeout"` // 秒
}

// SearchConfig 搜索相关配置
type SearchConfig struct {
	Provider string       `yaml:"provider"`
	GitHub   GitHubConfig `yaml:"github"`
}

// GitHubConfig GitHub issue 搜索配置
type GitHubConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
	Query   string `yaml:"query"`
	PerPage int    `yaml:"per_page"`
	Timeout int    `yaml:"timeout"` // 秒
}

// DataConfig 快照文件位置
type DataConfig struct {
	Dir          string `yaml:"dir"`
	BountiesFile string `yaml:"bounties_file"`
	ReportFile   string `yaml:"report_file"`
}

// AnalyzerConfig 分析阶段配置
type AnalyzerConfig struct {
	DigestLimit int `yaml:"digest_limit"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 出站请求节流配置，RPM 为 0 表示不限速
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// ScheduleConfig 定时任务配置
type ScheduleConfig struct {
	Spec string `yaml:"spec"`
}

// LoadConfig 从指定路径加载配置，文件中的 ${VAR} 引用从环境变量展开
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse 解析 YAML 配置并填充默认值
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults 填充所有未设置的配置项
func (c *Config) ApplyDefaults() {
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = DefaultLLMBaseURL
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultLLMModel
	}
	if c.LLM.Temperature == nil {
		t := float32(DefaultTemperature)
		c.LLM.Temperature = &t
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = DefaultLLMTimeout
	}

	if c.Search.Provider == "" {
		c.Search.Provider = DefaultSearchProvider
	}
	if c.Search.GitHub.BaseURL == "" {
		c.Search.GitHub.BaseURL = DefaultGitHubBaseURL
	}
	if c.Search.GitHub.Query == "" {
		c.Search.GitHub.Query = DefaultGitHubQuery
	}
	if c.Search.GitHub.PerPage == 0 {
		c.Search.GitHub.PerPage = DefaultPerPage
	}
	if c.Search.GitHub.Timeout == 0 {
		c.Search.GitHub.Timeout = DefaultSearchTimeout
	}

	if c.Data.Dir == "" {
		c.Data.Dir = DefaultDataDir
	}
	if c.Data.BountiesFile == "" {
		c.Data.BountiesFile = DefaultBountiesFile
	}
	if c.Data.ReportFile == "" {
		c.Data.ReportFile = DefaultReportFile
	}

	if c.Analyzer.DigestLimit == 0 {
		c.Analyzer.DigestLimit = DefaultDigestLimit
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.QPS == 0 {
		c.Concurrency.QPS = 1
	}
	if c.Schedule.Spec == "" {
		c.Schedule.Spec = DefaultScheduleSpec
	}
}

// Validate 校验配置取值范围
func (c *Config) Validate() error {
	if p := c.Search.GitHub.PerPage; p < 1 || p > 100 {
		return fmt.Errorf("search.github.per_page must be within 1..100, got %d", p)
	}
	if c.Search.GitHub.Timeout < 0 || c.LLM.Timeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if c.Analyzer.DigestLimit < 0 {
		return fmt.Errorf("analyzer.digest_limit must not be negative, got %d", c.Analyzer.DigestLimit)
	}
	if c.Concurrency.QPS < 0 || c.Concurrency.RPM < 0 {
		return fmt.Errorf("concurrency.qps and concurrency.rpm must not be negative")
	}
	return nil
}

// SearchTimeout 搜索请求超时
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.Search.GitHub.Timeout) * time.Second
}

// LLMTimeout LLM 请求超时
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.Timeout) * time.Second
}
