package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yourusername/edge-journal/internal/models"
)

// maxFutureSkew tolerates broker clocks slightly ahead of ours
const maxFutureSkew = 24 * time.Hour

// TradeValidator checks imported trades before they reach the journal
type TradeValidator struct {
	now     func() time.Time
	structs *validator.Validate
}

// NewTradeValidator creates a new trade validator
func NewTradeValidator() *TradeValidator {
	return &TradeValidator{now: time.Now, structs: validator.New()}
}

// ValidateTrade returns every problem found with a trade
func (v *TradeValidator) ValidateTrade(trade *models.TradeRecord) []string {
	if trade == nil {
		return []string{"trade is required"}
	}

	var problems []string

	if trade.AccountID == uuid.Nil {
		problems = append(problems, "account_id is required")
	}

	if trade.Date.IsZero() {
		problems = append(problems, "date is required")
	} else if trade.Date.After(v.now().Add(maxFutureSkew)) {
		problems = append(problems, fmt.Sprintf("date %s is in the future", trade.Date.Format(time.RFC3339)))
	}

	if trade.PnL != nil && (math.IsNaN(*trade.PnL) || math.IsInf(*trade.PnL, 0)) {
		problems = append(problems, "pnl must be a finite number")
	}

	if trade.RMultiple != nil && (math.IsNaN(*trade.RMultiple) || math.IsInf(*trade.RMultiple, 0)) {
		problems = append(problems, "r_multiple must be a finite number")
	}

	problems = append(problems, v.tagProblems(trade)...)

	if trade.CloseDate != nil && !trade.Date.IsZero() && trade.CloseDate.Before(trade.Date) {
		problems = append(problems, "close_date is before the open date")
	}

	return problems
}

// tagProblems runs the struct tag rules on the trade
func (v *TradeValidator) tagProblems(trade *models.TradeRecord) []string {
	err := v.structs.Struct(trade)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{err.Error()}
	}

	problems := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		switch fe.StructField() {
		case "Side":
			problems = append(problems, fmt.Sprintf("side must be long or short, got %v", fe.Value()))
		case "Fees":
			problems = append(problems, fmt.Sprintf("fees cannot be negative, got %.2f", trade.Fees))
		default:
			problems = append(problems, fmt.Sprintf("%s failed validation: %s", fe.Field(), fe.Tag()))
		}
	}
	return problems
}

// NormalizeTrade tidies free-text fields so breakdown buckets group consistently
func (v *TradeValidator) NormalizeTrade(trade *models.TradeRecord) {
	trade.Symbol = strings.ToUpper(strings.TrimSpace(trade.Symbol))
	trade.Side = models.TradeSide(strings.ToLower(strings.TrimSpace(string(trade.Side))))
	trade.Playbook = strings.TrimSpace(trade.Playbook)
	trade.Emotion = strings.TrimSpace(trade.Emotion)
	trade.AssetClass = strings.TrimSpace(trade.AssetClass)
}
