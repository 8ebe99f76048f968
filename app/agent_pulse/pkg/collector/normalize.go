package collector

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/model"
	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/search"
)

const (
	// MaxBodyRunes issue 正文保留的最大字符数
	MaxBodyRunes = 500
	// TruncationMarker 截断后追加的标记
	TruncationMarker = "..."
	// DefaultRepoPrefix GitHub 仓库资源地址前缀
	DefaultRepoPrefix = "https://api.github.com/repos/"
)

// AmountExtractor 从自由文本中解析金额，解析不到时返回 nil
type AmountExtractor interface {
	Extract(text string) *int64
}

// AmountExtractorFunc 函数适配器
type AmountExtractorFunc func(text string) *int64

func (f AmountExtractorFunc) Extract(text string) *int64 {
	return f(text)
}

// dollarPattern `$` 后接数字，可带千分位逗号，例如 $1,200
var dollarPattern = regexp.MustCompile(`\$(\d+(?:,\d{3})*)`)

// DollarAmount 默认金额语法：取第一个 $ 金额，去掉所有千分位逗号。
// 没有匹配或数值溢出时返回 nil，绝不返回 0 作为缺省值。
var DollarAmount AmountExtractor = AmountExtractorFunc(extractDollarAmount)

func extractDollarAmount(text string) *int64 {
	m := dollarPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// TruncateBody 截取正文前 MaxBodyRunes 个字符并追加截断标记；正文缺失或为空时返回空串
func TruncateBody(body *string) string {
	if body == nil || *body == "" {
		return ""
	}
	runes := []rune(*body)
	if len(runes) > MaxBodyRunes {
		runes = runes[:MaxBodyRunes]
	}
	return string(runes) + TruncationMarker
}

// RepoFromURL 去掉仓库资源地址的 API 前缀，得到 owner/name。
// 依次尝试 prefix 和 DefaultRepoPrefix：经代理访问时接口仍返回 api.github.com 地址。
// 两者都不匹配的地址原样返回。
func RepoFromURL(repositoryURL, prefix string) string {
	for _, p := range []string{prefix, DefaultRepoPrefix} {
		if p != "" && strings.HasPrefix(repositoryURL, p) {
			return strings.TrimPrefix(repositoryURL, p)
		}
	}
	return repositoryURL
}

// Normalize 将一条搜索结果转换为 BountyRecord
func Normalize(issue search.Issue, repoPrefix string, extractor AmountExtractor) model.BountyRecord {
	if extractor == nil {
		extractor = DollarAmount
	}
	labels := make([]string, len(issue.Labels))
	copy(labels, issue.Labels)

	return model.BountyRecord{
		Title:     issue.Title,
		URL:       issue.HTMLURL,
		Repo:      RepoFromURL(issue.RepositoryURL, repoPrefix),
		Labels:    labels,
		Body:      TruncateBody(issue.Body),
		CreatedAt: issue.CreatedAt,
		Author:    issue.Author,
		Amount:    extractor.Extract(issue.Title + " " + strings.Join(labels, " ")),
	}
}
