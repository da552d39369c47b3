package cache

import "fmt"

const (
	KeyGlobalStats    = "analytics:global-stats"
	keyLeaderboardFmt = "analytics:leaderboard:%s"
)

// LeaderboardKey holds the full board for one metric; callers slice it to
// the requested limit.
func LeaderboardKey(metric string) string {
	return fmt.Sprintf(keyLeaderboardFmt, metric)
}
