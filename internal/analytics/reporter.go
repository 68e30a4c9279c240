package analytics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GenerateConsoleReport formats statistics for terminal output
func GenerateConsoleReport(result StatisticsResult) string {
	var builder strings.Builder
	builder.WriteString("Performance Report\n")
	builder.WriteString("==================\n")
	builder.WriteString(fmt.Sprintf("Trades: %d (%d W / %d L / %d BE)\n",
		result.TotalTrades, result.Wins, result.Losses, result.Breakeven))
	builder.WriteString(fmt.Sprintf("Total P&L: %.2f (fees %.2f)\n", result.TotalPnL, result.TotalFees))
	builder.WriteString(fmt.Sprintf("Win Rate: %.2f%%\n", result.WinRate))
	builder.WriteString(fmt.Sprintf("Average Win / Loss: %.2f / %.2f\n", result.AverageWin, result.AverageLoss))
	builder.WriteString(fmt.Sprintf("Risk/Reward: %s\n", result.RiskReward))
	builder.WriteString(fmt.Sprintf("Profit Factor: %s\n", result.ProfitFactor))
	builder.WriteString(fmt.Sprintf("Expectancy: %.2f (%sR)\n", result.Expectancy, result.ExpectancyR))
	builder.WriteString(fmt.Sprintf("Kelly: %.2f%% (adjusted %.2f%%)\n", result.KellyFraction*100, result.AdjustedKelly*100))
	builder.WriteString(fmt.Sprintf("Sharpe Ratio: %.2f\n", result.SharpeRatio))
	builder.WriteString(fmt.Sprintf("Sortino Ratio: %s\n", result.SortinoRatio))
	builder.WriteString(fmt.Sprintf("Max Drawdown: %.2f%% (%.2f)\n", result.MaxDrawdownPct, result.MaxDrawdownAbs))
	builder.WriteString(fmt.Sprintf("Streaks: current %d, best %d, worst %d\n",
		result.Streaks.Current, result.Streaks.LongestWin, result.Streaks.LongestLoss))
	builder.WriteString(fmt.Sprintf("Risk of Ruin: %.2f%% (%s confidence, start capital %.2f)\n",
		result.RiskOfRuin.RiskOfRuin, result.RiskOfRuin.Confidence, result.RiskOfRuin.StartingCapital))

	if len(result.Breakdowns.Strategy) > 0 {
		builder.WriteString("\nBy Playbook\n")
		for _, b := range result.Breakdowns.Strategy {
			builder.WriteString(fmt.Sprintf("  %-20s %10.2f  %4d trades  %6.2f%%\n", b.Key, b.PnL, b.Count, b.WinRate))
		}
	}

	for _, w := range result.Warnings {
		builder.WriteString(fmt.Sprintf("warning: %s: %s\n", w.Metric, w.Message))
	}
	return builder.String()
}

// GenerateCSVExport writes key metrics for spreadsheets
func GenerateCSVExport(result StatisticsResult, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	csv := "metric,value\n" +
		fmt.Sprintf("total_trades,%d\n", result.TotalTrades) +
		fmt.Sprintf("total_pnl,%.2f\n", result.TotalPnL) +
		fmt.Sprintf("win_rate,%.4f\n", result.WinRate) +
		fmt.Sprintf("profit_factor,%s\n", ratioCSV(result.ProfitFactor)) +
		fmt.Sprintf("expectancy,%.4f\n", result.Expectancy) +
		fmt.Sprintf("kelly_fraction,%.4f\n", result.KellyFraction) +
		fmt.Sprintf("sharpe_ratio,%.4f\n", result.SharpeRatio) +
		fmt.Sprintf("sortino_ratio,%s\n", ratioCSV(result.SortinoRatio)) +
		fmt.Sprintf("max_drawdown_pct,%.4f\n", result.MaxDrawdownPct) +
		fmt.Sprintf("risk_of_ruin,%.4f\n", result.RiskOfRuin.RiskOfRuin)
	return os.WriteFile(outputPath, []byte(csv), 0o644)
}

// WriteEquityCurveCSV writes the equity curve to outputPath
func WriteEquityCurveCSV(curve EquityCurve, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte(curve.ToCSV()), 0o644)
}

func ratioCSV(r Ratio) string {
	if r.IsInf() {
		return "Infinity"
	}
	return fmt.Sprintf("%.4f", r.Float64())
}
