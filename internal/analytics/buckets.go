package analytics

import (
	"sort"

	"github.com/yourusername/edge-journal/internal/models"
)

// Bucket accumulates the trades that fall into one breakdown key
type Bucket struct {
	PnL    models.Cents
	Count  int
	Wins   int
	Losses int
	RSum   float64
	RCount int
}

func (b *Bucket) add(t trade) {
	b.PnL += t.pnl
	b.Count++
	switch {
	case t.pnl > 0:
		b.Wins++
	case t.pnl < 0:
		b.Losses++
	}
	if t.hasR {
		b.RSum += t.r
		b.RCount++
	}
}

// WinRate returns the bucket's win percentage
func (b *Bucket) WinRate() float64 {
	if b.Count == 0 {
		return 0
	}
	return float64(b.Wins) / float64(b.Count) * 100
}

// AvgR returns the mean R-multiple of trades that recorded one
func (b *Bucket) AvgR() float64 {
	if b.RCount == 0 {
		return 0
	}
	return b.RSum / float64(b.RCount)
}

// BucketSummary is the output form of a Bucket
type BucketSummary struct {
	Key     string  `json:"key"`
	PnL     float64 `json:"pnl"`
	Count   int     `json:"count"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	WinRate float64 `json:"win_rate"`
	AvgR    float64 `json:"avg_r"`
}

func (b *Bucket) summary(key string) BucketSummary {
	return BucketSummary{
		Key:     key,
		PnL:     b.PnL.Dollars(),
		Count:   b.Count,
		Wins:    b.Wins,
		Losses:  b.Losses,
		WinRate: b.WinRate(),
		AvgR:    b.AvgR(),
	}
}

// bucketMap is an open-keyed breakdown
type bucketMap map[string]*Bucket

func (m bucketMap) add(key string, t trade) {
	b, ok := m[key]
	if !ok {
		b = &Bucket{}
		m[key] = b
	}
	b.add(t)
}

// summaries returns the buckets ordered by P&L descending, then key
func (m bucketMap) summaries() []BucketSummary {
	out := make([]BucketSummary, 0, len(m))
	for key, b := range m {
		out = append(out, b.summary(key))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PnL != out[j].PnL {
			return out[i].PnL > out[j].PnL
		}
		return out[i].Key < out[j].Key
	})
	return out
}
