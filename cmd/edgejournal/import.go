package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/edge-journal/internal/evaluation"
	"github.com/yourusername/edge-journal/internal/models"
)

var importOpts struct {
	account string
	file    string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import closed trades from a JSON file",
	Long: `Import reads a JSON array of trades and stores them for an account.
Trades without an account_id are assigned to --account. The whole file is
rejected when any trade fails validation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, err := parseAccount(importOpts.account)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(importOpts.file)
		if err != nil {
			return fmt.Errorf("failed to read trades file: %w", err)
		}
		var trades []*models.TradeRecord
		if err := json.Unmarshal(data, &trades); err != nil {
			return fmt.Errorf("failed to parse trades file: %w", err)
		}
		if err := analytic.ImportTrades(cmd.Context(), accountID, trades); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d trades for account %s\n", len(trades), accountID)
		return nil
	},
}

var profileOpts struct {
	account string
	file    string
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage evaluation profiles",
}

var profileSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create or update an evaluation profile from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := evaluation.LoadProfileFile(profileOpts.file)
		if err != nil {
			return err
		}
		if profileOpts.account != "" {
			accountID, err := parseAccount(profileOpts.account)
			if err != nil {
				return err
			}
			profile.AccountID = accountID
		}
		if err := analytic.SaveProfile(cmd.Context(), profile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %s (%s)\n", profile.ID, profile.Name)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importOpts.account, "account", "", "Account id (UUID)")
	importCmd.Flags().StringVar(&importOpts.file, "file", "", "JSON file with an array of trades")
	_ = importCmd.MarkFlagRequired("file")

	profileSaveCmd.Flags().StringVar(&profileOpts.file, "file", "", "Profile YAML file")
	profileSaveCmd.Flags().StringVar(&profileOpts.account, "account", "", "Account id (overrides the file)")
	_ = profileSaveCmd.MarkFlagRequired("file")
	profileCmd.AddCommand(profileSaveCmd)
}
