package analytics

import (
	"math"
	"strings"
	"time"

	"github.com/yourusername/edge-journal/internal/models"
)

const dayKeyLayout = "2006-01-02"

const (
	untaggedKey      = "untagged"
	unknownSymbolKey = "UNKNOWN"
	otherAssetKey    = "other"
	followedRulesKey = "followed"
	brokeRulesKey    = "broken"
)

// trade is a TradeRecord validated once for the accumulation loop
type trade struct {
	id         string
	pnl        models.Cents
	fees       models.Cents
	r          float64
	hasR       bool
	date       time.Time
	hasDate    bool
	dayKey     string
	holdMins   float64
	hasHold    bool
	symbol     string
	playbook   string
	emotion    string
	assetClass string
	side       string
	rules      string
}

// normalize converts journal records to accumulation records. Records without a
// finite P&L are dropped; a missing open date only removes the trade from
// date-keyed breakdowns.
func normalize(records []*models.TradeRecord, loc *time.Location) []trade {
	if loc == nil {
		loc = time.UTC
	}
	out := make([]trade, 0, len(records))
	for _, rec := range records {
		if !rec.HasPnL() || math.IsNaN(*rec.PnL) || math.IsInf(*rec.PnL, 0) {
			continue
		}
		t := trade{
			id:         rec.ID.String(),
			pnl:        models.CentsFromDollars(*rec.PnL),
			fees:       models.CentsFromDollars(rec.Fees),
			symbol:     keyOr(strings.ToUpper(strings.TrimSpace(rec.Symbol)), unknownSymbolKey),
			playbook:   keyOr(strings.TrimSpace(rec.Playbook), untaggedKey),
			emotion:    keyOr(strings.ToLower(strings.TrimSpace(rec.Emotion)), untaggedKey),
			assetClass: keyOr(strings.ToLower(strings.TrimSpace(rec.AssetClass)), otherAssetKey),
			side:       keyOr(strings.ToLower(string(rec.Side)), untaggedKey),
			rules:      brokeRulesKey,
		}
		if rec.FollowedRules {
			t.rules = followedRulesKey
		}
		if rec.RMultiple != nil && !math.IsNaN(*rec.RMultiple) && !math.IsInf(*rec.RMultiple, 0) {
			t.r = *rec.RMultiple
			t.hasR = true
		}
		if rec.HasDate() {
			t.date = rec.Date.In(loc)
			t.hasDate = true
			t.dayKey = t.date.Format(dayKeyLayout)
		}
		if hold, ok := rec.HoldDuration(); ok {
			t.holdMins = hold.Minutes()
			t.hasHold = true
		}
		out = append(out, t)
	}
	return out
}

func keyOr(key, fallback string) string {
	if key == "" {
		return fallback
	}
	return key
}
