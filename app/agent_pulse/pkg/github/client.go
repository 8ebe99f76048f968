package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/logger"
	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/search"
)

const (
	DefaultBaseURL = "https://api.github.com"
	apiVersion     = "2022-11-28"
	userAgent      = "agent_pulse"
)

// Client GitHub issue 搜索客户端
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient 创建一个新的 GitHub 客户端，baseURL 为空时使用 api.github.com
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid github base url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// BaseURL 返回 API 根地址（不带结尾斜杠）
func (c *Client) BaseURL() string {
	return c.baseURL
}

// searchResponse GitHub /search/issues 响应
type searchResponse struct {
	TotalCount        int         `json:"total_count"`
	IncompleteResults bool        `json:"incomplete_results"`
	Items             []issueItem `json:"items"`
}

type issueItem struct {
	Title         string  `json:"title"`
	HTMLURL       string  `json:"html_url"`
	RepositoryURL string  `json:"repository_url"`
	Labels        []label `json:"labels"`
	Body          *string `json:"body"`
	CreatedAt     string  `json:"created_at"`
	User          *user   `json:"user"`
}

type label struct {
	Name string `json:"name"`
}

type user struct {
	Login string `json:"login"`
}

// Search 执行一次 issue 搜索，不翻页、不重试
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	q := url.Values{}
	q.Set("q", req.Query)
	if req.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(req.PerPage))
	}
	if req.Sort != "" {
		q.Set("sort", req.Sort)
	}
	if req.Order != "" {
		q.Set("order", req.Order)
	}
	endpoint := c.baseURL + "/search/issues?" + q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Accept", "application/vnd.github+json")
	httpReq.Header.Set("X-GitHub-Api-Version", apiVersion)
	httpReq.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	logger.Log.Debugf("GitHub 搜索请求: %s", endpoint)

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github api error (status %d): %s", res.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}
	if searchResp.IncompleteResults {
		logger.Log.Warn("GitHub 搜索结果不完整 (incomplete_results=true)")
	}

	issues := make([]search.Issue, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		labels := make([]string, 0, len(item.Labels))
		for _, l := range item.Labels {
			labels = append(labels, l.Name)
		}
		var author string
		if item.User != nil {
			author = item.User.Login
		}
		issues = append(issues, search.Issue{
			Title:         item.Title,
			HTMLURL:       item.HTMLURL,
			RepositoryURL: item.RepositoryURL,
			Labels:        labels,
			Body:          item.Body,
			CreatedAt:     item.CreatedAt,
			Author:        author,
		})
	}

	return &search.Response{TotalCount: searchResp.TotalCount, Issues: issues}, nil
}
