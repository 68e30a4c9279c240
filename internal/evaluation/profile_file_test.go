package evaluation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/edge-journal/internal/models"
)

func TestLoadProfileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `name: 50K Challenge
firm: Example Funding
account_size: 50000
daily_loss_limit: 2
daily_loss_unit: pct
max_drawdown: 2500
profit_target: 6
profit_target_unit: pct
evaluation_days: 30
min_trading_days: 5
start_date: 2024-03-04
trailing_dd: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	profile, err := LoadProfileFile(path)
	require.NoError(t, err)
	assert.Equal(t, "50K Challenge", profile.Name)
	assert.Equal(t, 1000.0, profile.DailyLossLimitAbs())
	assert.Equal(t, models.LimitUnitAbsolute, profile.MaxDrawdownUnit)
	assert.Equal(t, 2500.0, profile.MaxDrawdownAbs())
	assert.Equal(t, 3000.0, profile.ProfitTargetAbs())
	assert.True(t, profile.TrailingDrawdown)
	require.NotNil(t, profile.StartDate)
	assert.True(t, profile.StartDate.Equal(time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)))
}

func TestParseProfileRejectsInvalid(t *testing.T) {
	_, err := ParseProfile([]byte("account_size: 0\n"))
	assert.True(t, errors.Is(err, models.ErrInvalidProfile))

	_, err = ParseProfile([]byte("account_size: 1000\nmax_drawdown_unit: percent\n"))
	assert.True(t, errors.Is(err, models.ErrInvalidProfile))

	_, err = ParseProfile([]byte("account_size: [1, 2]\n"))
	assert.Error(t, err)
}

func TestLoadProfileFileMissing(t *testing.T) {
	_, err := LoadProfileFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
