package collector

import (
	"context"

	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/logger"
	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/model"
	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/search"
)

// Limiter 出站请求节流，*rate.Limiter 满足该接口
type Limiter interface {
	Wait(ctx context.Context) error
}

// Options Collector 选项
type Options struct {
	Query      string
	PerPage    int
	RepoPrefix string
	Extractor  AmountExtractor
	Limiter    Limiter
}

// Collector 拉取一页悬赏 issue 并归一化
type Collector struct {
	searcher search.Searcher
	opts     Options
}

// New 创建 Collector
func New(searcher search.Searcher, opts Options) *Collector {
	if opts.Extractor == nil {
		opts.Extractor = DollarAmount
	}
	if opts.RepoPrefix == "" {
		opts.RepoPrefix = DefaultRepoPrefix
	}
	return &Collector{searcher: searcher, opts: opts}
}

// Collect 发起一次搜索（按更新时间倒序，一页），返回按原顺序归一化的记录。
// 搜索出错时返回 SearchFailure，调用方不应写任何快照。
func (c *Collector) Collect(ctx context.Context) ([]model.BountyRecord, error) {
	logger.Log.Info("🌰 开始搜索悬赏...")

	if c.opts.Limiter != nil {
		if err := c.opts.Limiter.Wait(ctx); err != nil {
			return nil, model.SearchFailure(err, "limiter wait")
		}
	}

	resp, err := c.searcher.Search(ctx, &search.Request{
		Query:   c.opts.Query,
		PerPage: c.opts.PerPage,
		Sort:    "updated",
		Order:   "desc",
	})
	if err != nil {
		return nil, model.SearchFailure(err, "search issues %q", c.opts.Query)
	}

	if resp == nil {
		resp = &search.Response{}
	}

	bounties := make([]model.BountyRecord, 0, len(resp.Issues))
	for _, issue := range resp.Issues {
		bounties = append(bounties, Normalize(issue, c.opts.RepoPrefix, c.opts.Extractor))
	}

	logger.Log.Infof("共找到 %d 条悬赏", len(bounties))
	return bounties, nil
}
