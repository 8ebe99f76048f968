package analyzer

import (
	"context"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/logger"
	dm "github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/model"
)

const (
	DefaultDigestLimit = 50
	DefaultTemperature = float32(0.7)
)

// Limiter 出站请求节流，*rate.Limiter 满足该接口
type Limiter interface {
	Wait(ctx context.Context) error
}

// Options Analyzer 选项
type Options struct {
	DigestLimit int
	Temperature *float32
	Timeout     time.Duration
	Limiter     Limiter
	Now         func() time.Time
}

// Analyzer 调用一次 LLM 生成市场分析，失败时退回固定报告
type Analyzer struct {
	cm   model.BaseChatModel
	opts Options
}

// New 创建 Analyzer，cm 为 nil 时每次分析都走兜底
func New(cm model.BaseChatModel, opts Options) *Analyzer {
	if opts.DigestLimit <= 0 {
		opts.DigestLimit = DefaultDigestLimit
	}
	if opts.Temperature == nil {
		t := DefaultTemperature
		opts.Temperature = &t
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Analyzer{cm: cm, opts: opts}
}

// Analyze 生成报告，总是返回非 nil 报告
func (a *Analyzer) Analyze(ctx context.Context, bounties []dm.BountyRecord) *dm.Report {
	logger.Log.Infof("🌰 开始分析 %d 条悬赏...", len(bounties))

	analysis, err := a.Generate(ctx, bounties)
	if err != nil {
		logger.Log.Errorf("趋势分析失败，使用兜底报告: %v", err)
		fallback := FallbackAnalysis()
		analysis = &fallback
	} else {
		logger.Log.Infof("分析完成 🌰 Pulse Score: %v", analysis.AgentPulseScore)
	}

	return BuildReport(*analysis, bounties, a.opts.Now())
}

// Generate 发起一次模型调用并校验结果。任何失败都返回 GenerationFailure。
func (a *Analyzer) Generate(ctx context.Context, bounties []dm.BountyRecord) (*dm.AnalysisResult, error) {
	if a.cm == nil {
		return nil, dm.GenerationFailure(nil, "chat model unavailable")
	}

	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}

	if a.opts.Limiter != nil {
		if err := a.opts.Limiter.Wait(ctx); err != nil {
			return nil, dm.GenerationFailure(err, "limiter wait")
		}
	}

	count := min(len(bounties), a.opts.DigestLimit)
	digest := RenderDigest(bounties, a.opts.DigestLimit)
	logger.Log.Debugf("digest (%d 条):\n%s", count, digest)

	messages := []*schema.Message{
		{Role: schema.User, Content: BuildPrompt(digest, count)},
	}

	resp, err := a.cm.Generate(ctx, messages, model.WithTemperature(*a.opts.Temperature))
	if err != nil {
		return nil, dm.GenerationFailure(err, "generate analysis")
	}
	if resp == nil {
		return nil, dm.GenerationFailure(nil, "generate analysis: empty response")
	}

	result, err := ParseAnalysis(resp.Content)
	if err != nil {
		return nil, dm.GenerationFailure(err, "parse analysis")
	}
	return result, nil
}
