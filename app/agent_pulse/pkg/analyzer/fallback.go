package analyzer

import (
	"time"

	dm "github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/model"
)

// FallbackSentiment 兜底报告的情绪标记，下游据此识别占位内容
const FallbackSentiment = "Data Stream Interrupted"

// FallbackAnalysis 模型不可用时的固定分析结果，不依赖任何外部资源
func FallbackAnalysis() dm.AnalysisResult {
	return dm.AnalysisResult{
		MarketSentiment: FallbackSentiment,
		TopSkills:       []string{"Resilience", "Debugging", "Patience"},
		EmergingTrends:  []string{"API Outages"},
		AverageBounty:   0,
		AgentPulseScore: 0,
		Commentary:      "⚠️ The AI oracle is currently offline. Showing cached reality. 🌰",
	}
}

// BuildReport 组装报告，bounties 只保留前 PreviewSize 条且不重新排序
func BuildReport(analysis dm.AnalysisResult, bounties []dm.BountyRecord, now time.Time) *dm.Report {
	n := min(len(bounties), dm.PreviewSize)
	preview := make([]dm.BountyRecord, n)
	copy(preview, bounties[:n])

	if analysis.TopSkills == nil {
		analysis.TopSkills = []string{}
	}
	if analysis.EmergingTrends == nil {
		analysis.EmergingTrends = []string{}
	}

	return &dm.Report{
		GeneratedAt: now.UTC(),
		Analysis:    analysis,
		Bounties:    preview,
	}
}
