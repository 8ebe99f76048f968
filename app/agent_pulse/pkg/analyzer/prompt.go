package analyzer

import (
	"fmt"
	"strings"

	dm "github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/model"
)

const analysisPromptTpl = `You are an expert market analyst for the AI Agent Economy. Analyze these %d recent bounties/jobs.

Generate a JSON report with the following structure:
{
  "market_sentiment": "string (Bullish/Bearish/Neutral + short reason)",
  "top_skills": ["skill1", "skill2", "skill3"],
  "emerging_trends": ["trend1", "trend2"],
  "average_bounty": number (estimate based on data),
  "agent_pulse_score": number (0-100, how hot is the market?),
  "commentary": "A short, witty paragraph about the state of the agent economy. Use 🌰 emojis."
}

Here is the data:
%s
`

// RenderDigest 按输入顺序渲染前 limit 条悬赏，每条一行:
// - [repo] title (Labels: a, b) $amount
// 金额缺失或为 0 时该部分为空。limit <= 0 表示不截断。
func RenderDigest(bounties []dm.BountyRecord, limit int) string {
	if limit > 0 && len(bounties) > limit {
		bounties = bounties[:limit]
	}

	lines := make([]string, 0, len(bounties))
	for _, b := range bounties {
		var amount string
		if b.Amount != nil && *b.Amount != 0 {
			amount = fmt.Sprintf("$%d", *b.Amount)
		}
		lines = append(lines, fmt.Sprintf("- [%s] %s (Labels: %s) %s", b.Repo, b.Title, strings.Join(b.Labels, ", "), amount))
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt 构造分析提示词，digest 原样嵌入
func BuildPrompt(digest string, count int) string {
	return fmt.Sprintf(analysisPromptTpl, count, digest)
}
