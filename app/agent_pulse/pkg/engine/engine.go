package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/analyzer"
	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/collector"
	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/config"
	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/logger"
	dm "github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/model"
	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/search/factory"
	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/storage"
)

// Engine 串联采集与分析两个阶段
type Engine struct {
	collector     *collector.Collector
	analyzer      *analyzer.Analyzer
	store         *storage.FileStore
	searchTimeout time.Duration
}

// NewEngine 按配置创建引擎实例。LLM 初始化失败不阻止启动，分析阶段会走兜底报告。
func NewEngine(ctx context.Context, cfg *config.Config) (*Engine, error) {
	searcher, repoPrefix, err := factory.NewSearcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
	}

	limiter := newLimiter(cfg.Concurrency)

	var cm model.BaseChatModel
	chatModel, err := newChatModel(ctx, cfg.LLM, cfg.LLMTimeout())
	if err != nil {
		logger.Log.Errorf("LLM 初始化失败，分析阶段将使用兜底报告: %v", err)
	} else {
		cm = chatModel
	}

	store := storage.NewFileStore(cfg.Data.Dir, cfg.Data.BountiesFile, cfg.Data.ReportFile)

	c := collector.New(searcher, collector.Options{
		Query:      cfg.Search.GitHub.Query,
		PerPage:    cfg.Search.GitHub.PerPage,
		RepoPrefix: repoPrefix,
		Limiter:    limiter,
	})
	a := analyzer.New(cm, analyzer.Options{
		DigestLimit: cfg.Analyzer.DigestLimit,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLMTimeout(),
		Limiter:     limiter,
	})

	return New(c, a, store, cfg.SearchTimeout()), nil
}

// New 由已构造好的组件组装引擎
func New(c *collector.Collector, a *analyzer.Analyzer, store *storage.FileStore, searchTimeout time.Duration) *Engine {
	return &Engine{
		collector:     c,
		analyzer:      a,
		store:         store,
		searchTimeout: searchTimeout,
	}
}

// newLimiter RPM 为 0 时不限速，QPS 作为突发上限
func newLimiter(cfg config.ConcurrencyConfig) *rate.Limiter {
	limit := rate.Inf
	if cfg.RPM > 0 {
		limit = rate.Limit(float64(cfg.RPM) / 60.0)
	}
	burst := max(cfg.QPS, 1)
	return rate.NewLimiter(limit, burst)
}

func newChatModel(ctx context.Context, cfg config.LLMConfig, timeout time.Duration) (*openai.ChatModel, error) {
	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Timeout:     timeout,
		Temperature: cfg.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
}

// RunCollect 采集并覆盖写入悬赏快照。搜索失败时不写任何文件。
func (e *Engine) RunCollect(ctx context.Context) ([]dm.BountyRecord, error) {
	if e.searchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.searchTimeout)
		defer cancel()
	}

	bounties, err := e.collector.Collect(ctx)
	if err != nil {
		return nil, err
	}
	if len(bounties) == 0 {
		logger.Log.Warn("未找到任何悬赏，写入空快照")
	}

	if err := e.store.SaveBounties(ctx, bounties); err != nil {
		return nil, dm.SearchFailure(err, "save bounties to %s", e.store.BountiesPath())
	}
	logger.Log.Infof("悬赏快照已写入 %s", e.store.BountiesPath())
	return bounties, nil
}

// RunAnalyze 读取悬赏快照、生成报告并覆盖写入。快照缺失时直接返回，不调用模型。
func (e *Engine) RunAnalyze(ctx context.Context) (*dm.Report, error) {
	bounties, err := e.store.LoadBounties(ctx)
	if err != nil {
		return nil, err
	}

	report := e.analyzer.Analyze(ctx, bounties)
	if err := e.store.SaveReport(ctx, report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	logger.Log.Infof("报告已写入 %s", e.store.ReportPath())
	return report, nil
}

// Run 依次执行采集和分析，采集失败时跳过分析
func (e *Engine) Run(ctx context.Context) error {
	if _, err := e.RunCollect(ctx); err != nil {
		return fmt.Errorf("collect: %w", err)
	}
	if _, err := e.RunAnalyze(ctx); err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	return nil
}
