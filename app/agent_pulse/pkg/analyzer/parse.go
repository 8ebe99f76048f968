package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	dm "github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/model"
)

var requiredKeys = []string{
	"market_sentiment",
	"top_skills",
	"emerging_trends",
	"average_bounty",
	"agent_pulse_score",
	"commentary",
}

// ParseAnalysis 解析模型输出并校验结构：六个字段必须齐全，类型与 AnalysisResult 一致，
// 数值字段允许数字或数字字符串，agent_pulse_score 必须在 [0, 100] 内。
func ParseAnalysis(text string) (*dm.AnalysisResult, error) {
	clean := cleanJSON(text)
	if clean == "" {
		return nil, fmt.Errorf("empty model response")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &fields); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	var missing []string
	for _, key := range requiredKeys {
		if raw, ok := fields[key]; !ok || isNull(raw) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}

	var (
		res dm.AnalysisResult
		err error
	)
	if err = json.Unmarshal(fields["market_sentiment"], &res.MarketSentiment); err != nil {
		return nil, fmt.Errorf("market_sentiment: %w", err)
	}
	if err = json.Unmarshal(fields["top_skills"], &res.TopSkills); err != nil {
		return nil, fmt.Errorf("top_skills: %w", err)
	}
	if err = json.Unmarshal(fields["emerging_trends"], &res.EmergingTrends); err != nil {
		return nil, fmt.Errorf("emerging_trends: %w", err)
	}
	if res.AverageBounty, err = looseNumber(fields["average_bounty"]); err != nil {
		return nil, fmt.Errorf("average_bounty: %w", err)
	}
	if res.AgentPulseScore, err = looseNumber(fields["agent_pulse_score"]); err != nil {
		return nil, fmt.Errorf("agent_pulse_score: %w", err)
	}
	if err = json.Unmarshal(fields["commentary"], &res.Commentary); err != nil {
		return nil, fmt.Errorf("commentary: %w", err)
	}

	if res.AgentPulseScore < 0 || res.AgentPulseScore > 100 {
		return nil, fmt.Errorf("agent_pulse_score %v out of range [0, 100]", res.AgentPulseScore)
	}
	return &res, nil
}

// cleanJSON 去掉首尾空白和 markdown 代码块标记
func cleanJSON(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(strings.TrimPrefix(s, "```json"), "```")
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func looseNumber(raw json.RawMessage) (float64, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("not a number: %s", raw)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return f, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
