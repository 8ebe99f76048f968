package collector

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/model"
	"github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/search"
)

func TestDollarAmount(t *testing.T) {
	cases := []struct {
		text string
		want *int64
	}{
		{"Bounty $1,200 for agent memory", model.Int64(1200)},
		{"$1,200,000 grant", model.Int64(1200000)},
		{"[$50] fix typo", model.Int64(50)},
		{"$300 then $500", model.Int64(300)},
		{"$0 sponsorship", model.Int64(0)},
		{"$12,34 oddly grouped", model.Int64(12)},
		{"no money here", nil},
		{"USD 400", nil},
		{"$ 400", nil},
		{"", nil},
		{"$99999999999999999999", nil},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got := DollarAmount.Extract(tc.text)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Extract(%q) mismatch (-want +got):\n%s", tc.text, diff)
			}
		})
	}
}

func TestTruncateBody(t *testing.T) {
	long := strings.Repeat("a", 600)
	exact := strings.Repeat("b", 500)
	wide := strings.Repeat("界", 501)
	short := "Please implement tool calling."
	empty := ""

	cases := []struct {
		name string
		body *string
		want string
	}{
		{"absent", nil, ""},
		{"empty", &empty, ""},
		{"short", &short, short + "..."},
		{"exactly 500", &exact, exact + "..."},
		{"longer than 500", &long, strings.Repeat("a", 500) + "..."},
		{"multibyte", &wide, strings.Repeat("界", 500) + "..."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateBody(tc.body); got != tc.want {
				t.Errorf("TruncateBody = %q (len %d), want len %d", got, len(got), len(tc.want))
			}
		})
	}
}

func TestRepoFromURL(t *testing.T) {
	cases := []struct {
		url, prefix, want string
	}{
		{"https://api.github.com/repos/acme/agents", "", "acme/agents"},
		{"https://api.github.com/repos/acme/agents", DefaultRepoPrefix, "acme/agents"},
		{"https://ghe.example.com/api/v3/repos/team/bot", "https://ghe.example.com/api/v3/repos/", "team/bot"},
		// 代理地址作为 base_url 时，接口返回的仍是 api.github.com 资源地址
		{"https://api.github.com/repos/acme/agents", "https://gh-proxy.internal/repos/", "acme/agents"},
		{"https://gitlab.com/acme/agents", "https://gh-proxy.internal/repos/", "https://gitlab.com/acme/agents"},
		// 不带前缀的地址原样保留
		{"https://gitlab.com/acme/agents", "", "https://gitlab.com/acme/agents"},
		{"", "", ""},
	}
	for _, tc := range cases {
		if got := RepoFromURL(tc.url, tc.prefix); got != tc.want {
			t.Errorf("RepoFromURL(%q, %q) = %q, want %q", tc.url, tc.prefix, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	body := "Implement retrieval for the planner."
	issue := search.Issue{
		Title:         "Agent planner bounty",
		HTMLURL:       "https://github.com/acme/agents/issues/42",
		RepositoryURL: "https://api.github.com/repos/acme/agents",
		Labels:        []string{"bounty", "$2,500", "bounty"},
		Body:          &body,
		CreatedAt:     "2026-10-10T10:00:00Z",
		Author:        "builder",
	}

	got := Normalize(issue, "", nil)
	want := model.BountyRecord{
		Title:     "Agent planner bounty",
		URL:       "https://github.com/acme/agents/issues/42",
		Repo:      "acme/agents",
		Labels:    []string{"bounty", "$2,500", "bounty"},
		Body:      body + "...",
		CreatedAt: "2026-10-10T10:00:00Z",
		Author:    "builder",
		Amount:    model.Int64(2500),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}

	issue.Labels[0] = "mutated"
	if got.Labels[0] != "bounty" {
		t.Error("Normalize must not alias the source label slice")
	}
}

func TestNormalize_CustomExtractor(t *testing.T) {
	var seen string
	ex := AmountExtractorFunc(func(text string) *int64 {
		seen = text
		return model.Int64(7)
	})

	got := Normalize(search.Issue{Title: "Paid in EUR", Labels: []string{"€700", "job"}}, "", ex)
	if seen != "Paid in EUR €700 job" {
		t.Errorf("extractor saw %q", seen)
	}
	if got.Amount == nil || *got.Amount != 7 {
		t.Errorf("Amount = %v, want 7", got.Amount)
	}
	if got.Labels == nil {
		t.Error("Labels must be non-nil")
	}
}
