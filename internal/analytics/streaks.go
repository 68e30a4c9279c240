package analytics

import "sort"

// Streaks describes consecutive winning and losing trades in date order
type Streaks struct {
	// Current is positive for a running win streak and negative for a loss streak
	Current     int `json:"current"`
	LongestWin  int `json:"longest_win"`
	LongestLoss int `json:"longest_loss"`
}

// computeStreaks walks dated trades by open time, ties broken by id. A breakeven
// trade ends any running streak.
func computeStreaks(trades []trade) Streaks {
	dated := make([]trade, 0, len(trades))
	for _, t := range trades {
		if t.hasDate {
			dated = append(dated, t)
		}
	}
	sort.Slice(dated, func(i, j int) bool {
		if !dated[i].date.Equal(dated[j].date) {
			return dated[i].date.Before(dated[j].date)
		}
		if dated[i].id != dated[j].id {
			return dated[i].id < dated[j].id
		}
		return dated[i].pnl < dated[j].pnl
	})

	var s Streaks
	wins, losses := 0, 0
	for _, t := range dated {
		switch {
		case t.pnl > 0:
			wins++
			losses = 0
		case t.pnl < 0:
			losses++
			wins = 0
		default:
			wins, losses = 0, 0
		}
		if wins > s.LongestWin {
			s.LongestWin = wins
		}
		if losses > s.LongestLoss {
			s.LongestLoss = losses
		}
	}
	switch {
	case wins > 0:
		s.Current = wins
	case losses > 0:
		s.Current = -losses
	}
	return s
}
