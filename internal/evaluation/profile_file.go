package evaluation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/edge-journal/internal/models"
)

// LoadProfileFile reads an evaluation profile from a YAML file, e.g.
//
//	name: 50K Challenge
//	account_size: 50000
//	daily_loss_limit: 2
//	daily_loss_unit: pct
//	max_drawdown: 2500
//	max_drawdown_unit: abs
//	trailing_dd: true
func LoadProfileFile(path string) (*models.EvaluationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes and validates a YAML profile. Units default to absolute.
func ParseProfile(data []byte) (*models.EvaluationProfile, error) {
	profile := &models.EvaluationProfile{}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if profile.DailyLossUnit == "" {
		profile.DailyLossUnit = models.LimitUnitAbsolute
	}
	if profile.MaxDrawdownUnit == "" {
		profile.MaxDrawdownUnit = models.LimitUnitAbsolute
	}
	if profile.ProfitTargetUnit == "" {
		profile.ProfitTargetUnit = models.LimitUnitAbsolute
	}
	if err := models.ValidateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
