package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check configuration, credentials and input before a run",
	Long: `Validate loads the configuration file, resolves the search credentials
and checks that the input file exists. It exits non-zero if any check fails.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("input", "", "institution CSV (overrides input.input_file)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	check := func(name string, err error) {
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL  %-12s %v\n", name, err)
			return
		}
		fmt.Fprintf(out, "ok    %s\n", name)
	}

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "config file: %s\n", used)
	} else {
		fmt.Fprintln(out, "config file: none (defaults)")
	}

	cfg, err := loadConfig(cmd, false)
	check("config", err)
	if err != nil {
		return fmt.Errorf("%d check(s) failed", failed)
	}

	_, err = loadConfig(cmd, true)
	check("credentials", err)

	input := cfg.Input.InputFile
	if v, _ := cmd.Flags().GetString("input"); v != "" {
		input = v
	}
	info, err := os.Stat(input)
	if err == nil && info.IsDir() {
		err = fmt.Errorf("%s is a directory", input)
	}
	check("input", err)

	fmt.Fprintf(out, "overrides: %d, whitelist: %d, blacklist: %d\n",
		len(cfg.Tables.Overrides), len(cfg.Tables.Whitelist), len(cfg.Tables.Blacklist))

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	fmt.Fprintln(out, "environment ready")
	return nil
}
