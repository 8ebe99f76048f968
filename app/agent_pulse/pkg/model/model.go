package model

import "time"

// PreviewSize 报告中保留的原始悬赏条数
const PreviewSize = 10

// BountyRecord 单条归一化后的悬赏/招聘 issue
type BountyRecord struct {
	Title     string   `json:"title"`
	URL       string   `json:"url"`
	Repo      string   `json:"repo"` // owner/name
	Labels    []string `json:"labels"`
	Body      string   `json:"body"`
	CreatedAt string   `json:"created_at"`
	Author    string   `json:"author"`
	// Amount 从标题和标签中解析出的金额，未找到时为 nil（序列化为 null，而不是 0）
	Amount *int64 `json:"amount"`
}

// AnalysisResult LLM 给出的市场分析
type AnalysisResult struct {
	MarketSentiment string   `json:"market_sentiment"`
	TopSkills       []string `json:"top_skills"`
	EmergingTrends  []string `json:"emerging_trends"`
	AverageBounty   float64  `json:"average_bounty"`
	AgentPulseScore float64  `json:"agent_pulse_score"` // 0-100
	Commentary      string   `json:"commentary"`
}

// Report 对外发布的报告文件内容
type Report struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Analysis    AnalysisResult `json:"analysis"`
	Bounties    []BountyRecord `json:"bounties"`
}

// Int64 返回 v 的指针，便于构造 Amount
func Int64(v int64) *int64 {
	return &v
}
