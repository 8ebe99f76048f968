package factory

import (
	"fmt"

	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/config"
	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/github"
	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/search"
)

// NewSearcher 根据配置创建搜索实例，同时返回该提供方仓库资源地址的前缀
func NewSearcher(cfg *config.Config) (search.Searcher, string, error) {
	provider := cfg.Search.Provider
	if provider == "" {
		provider = config.DefaultSearchProvider
	}

	switch provider {
	case "github":
		gh := cfg.Search.GitHub
		client, err := github.NewClient(gh.BaseURL, gh.Token, cfg.SearchTimeout())
		if err != nil {
			return nil, "", err
		}
		return client, client.BaseURL() + "/repos/", nil

	default:
		return nil, "", fmt.Errorf("unknown search provider: %s", provider)
	}
}
