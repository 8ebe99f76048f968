package search

import "context"

// Searcher 定义通用的 issue 搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求，只取一页
type Request struct {
	Query   string
	PerPage int
	Sort    string // "updated", "created", ...
	Order   string // "desc" or "asc"
}

// Response 通用搜索响应，保持接口返回顺序
type Response struct {
	TotalCount int
	Issues     []Issue
}

// Issue 单条 issue 搜索结果
type Issue struct {
	Title         string
	HTMLURL       string
	RepositoryURL string // API 资源地址，例如 https://api.github.com/repos/owner/name
	Labels        []string
	Body          *string // 可能为空
	CreatedAt     string
	Author        string
}
