package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/edge-journal/internal/evaluation"
	"github.com/yourusername/edge-journal/internal/models"
)

const (
	formatText = "text"
	formatJSON = "json"
	dateLayout = "2006-01-02"
)

func parseAccount(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, fmt.Errorf("--account is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid account id %q: %w", raw, models.ErrInvalidID)
	}
	return id, nil
}

// parseRange turns --from/--to dates into an inclusive range in loc. Empty values stay open.
func parseRange(from, to string, loc *time.Location) (time.Time, time.Time, error) {
	var start, end time.Time
	if from != "" {
		d, err := time.ParseInLocation(dateLayout, from, loc)
		if err != nil {
			return start, end, fmt.Errorf("invalid --from date %q, expected YYYY-MM-DD", from)
		}
		start = d
	}
	if to != "" {
		d, err := time.ParseInLocation(dateLayout, to, loc)
		if err != nil {
			return start, end, fmt.Errorf("invalid --to date %q, expected YYYY-MM-DD", to)
		}
		end = d.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return start, end, fmt.Errorf("--to is before --from")
	}
	return start, end, nil
}

func checkFormat(format string) error {
	if format != formatText && format != formatJSON {
		return fmt.Errorf("unknown format %q, expected text or json", format)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// profileSource resolves --profile (stored id) or --profile-file (YAML)
type profileSource struct {
	id      string
	file    string
	account string
}

func (p profileSource) validate() error {
	if (p.id == "") == (p.file == "") {
		return fmt.Errorf("exactly one of --profile and --profile-file is required")
	}
	return nil
}

func (p profileSource) load() (*models.EvaluationProfile, error) {
	profile, err := evaluation.LoadProfileFile(p.file)
	if err != nil {
		return nil, err
	}
	if p.account != "" {
		account, err := parseAccount(p.account)
		if err != nil {
			return nil, err
		}
		profile.AccountID = account
	}
	if profile.AccountID == uuid.Nil {
		return nil, fmt.Errorf("profile file has no account_id; pass --account")
	}
	return profile, nil
}
