package storage

import (
	"context"
	"time"
)

// AdminStats is everything the admin dashboard shows.
type AdminStats struct {
	VisitorStats
	TotalMessages  int64     `json:"total_messages"`
	RecentVisitors []Visitor `json:"recent_visitors"`
	RecentMessages []Message `json:"recent_messages"`
}

func (s *Store) AdminStats(ctx context.Context, now time.Time) (*AdminStats, error) {
	vs, err := s.VisitorStats(ctx, now)
	if err != nil {
		return nil, err
	}
	stats := &AdminStats{VisitorStats: vs}

	if stats.TotalMessages, err = s.CountMessages(ctx); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	if stats.RecentMessages, err = s.Messages(ctx, 10); err != nil {
		return nil, err
	}
	return stats, nil
}
