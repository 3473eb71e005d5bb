package playground

import (
	"context"
	"fmt"
)

type Language struct {
	Name       string `yaml:"name" json:"name"`
	Percentage int    `yaml:"percentage" json:"percentage"`
	Color      string `yaml:"color" json:"color"`
}

type Repo struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Language    string   `yaml:"language" json:"language"`
	Stars       int      `yaml:"stars" json:"stars"`
	Forks       int      `yaml:"forks" json:"forks"`
	Topics      []string `yaml:"topics" json:"topics"`
}

type MonthlyCommits struct {
	Month   string `yaml:"month" json:"month"`
	Commits int    `yaml:"commits" json:"commits"`
}

// Stats is the GitHub profile summary.
type Stats struct {
	Username      string           `yaml:"username" json:"username"`
	TotalRepos    int              `yaml:"total_repos" json:"total_repos"`
	TotalStars    int              `yaml:"total_stars" json:"total_stars"`
	TotalForks    int              `yaml:"total_forks" json:"total_forks"`
	TotalCommits  int              `yaml:"total_commits" json:"total_commits"`
	Contributions int              `yaml:"contributions" json:"contributions"`
	Languages     []Language       `yaml:"languages" json:"languages"`
	Pinned        []Repo           `yaml:"pinned" json:"pinned"`
	Activity      []MonthlyCommits `yaml:"activity" json:"activity"`
}

// PeakCommits is the highest monthly commit count, used to scale bars.
func (s Stats) PeakCommits() int {
	peak := 0
	for _, m := range s.Activity {
		peak = max(peak, m.Commits)
	}
	return peak
}

// BarPercent scales a month's commits against the peak month.
func (s Stats) BarPercent(commits int) int {
	peak := s.PeakCommits()
	if peak == 0 {
		return 0
	}
	return commits * 100 / peak
}

// GitHubStats returns the hardcoded profile summary after the delay.
func (c *Client) GitHubStats(ctx context.Context) (Stats, error) {
	if err := c.wait(ctx, c.delay); err != nil {
		return Stats{}, fmt.Errorf("load github stats: %w", err)
	}
	return c.stats, nil
}
