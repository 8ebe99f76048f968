package analyzer

import (
	"fmt"
	"strings"
	"testing"

	dm "github.com/iWorld-y/agent_pulse/app/agent_pulse/pkg/model"
)

func TestRenderDigest(t *testing.T) {
	bounties := []dm.BountyRecord{
		{Repo: "acme/agents", Title: "Build a planner", Labels: []string{"bounty", "ai"}, Amount: dm.Int64(1200)},
		{Repo: "acme/jobs", Title: "Hiring agent engineer", Labels: []string{"job"}},
		{Repo: "solo/repo", Title: "No labels", Labels: []string{}},
		{Repo: "free/work", Title: "Volunteer", Labels: []string{"bounty"}, Amount: dm.Int64(0)},
	}

	got := RenderDigest(bounties, 50)
	want := "- [acme/agents] Build a planner (Labels: bounty, ai) $1200\n" +
		"- [acme/jobs] Hiring agent engineer (Labels: job) \n" +
		"- [solo/repo] No labels (Labels: ) \n" +
		"- [free/work] Volunteer (Labels: bounty) "
	if got != want {
		t.Errorf("RenderDigest =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderDigest_Limit(t *testing.T) {
	var bounties []dm.BountyRecord
	for i := 0; i < 60; i++ {
		bounties = append(bounties, dm.BountyRecord{Repo: "o/r", Title: fmt.Sprintf("t%d", i)})
	}

	lines := strings.Split(RenderDigest(bounties, 50), "\n")
	if len(lines) != 50 {
		t.Fatalf("lines = %d, want 50", len(lines))
	}
	if !strings.Contains(lines[0], " t0 ") || !strings.Contains(lines[49], " t49 ") {
		t.Errorf("digest must keep input order: first=%q last=%q", lines[0], lines[49])
	}

	if got := RenderDigest(nil, 50); got != "" {
		t.Errorf("empty digest = %q", got)
	}
	if n := len(strings.Split(RenderDigest(bounties, 0), "\n")); n != 60 {
		t.Errorf("limit 0 lines = %d, want 60", n)
	}
}

func TestBuildPrompt(t *testing.T) {
	digest := "- [a/b] 50% off $100 (Labels: bounty) $100"
	prompt := BuildPrompt(digest, 1)

	if !strings.Contains(prompt, digest) {
		t.Error("prompt must embed the digest verbatim")
	}
	if !strings.Contains(prompt, "AI Agent Economy") || !strings.Contains(prompt, "Analyze these 1 recent") {
		t.Errorf("prompt framing missing:\n%s", prompt)
	}
	for _, key := range requiredKeys {
		if !strings.Contains(prompt, `"`+key+`"`) {
			t.Errorf("prompt missing schema key %q", key)
		}
	}
}
