package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"modelguard/internal/analysis"
	"modelguard/internal/config"
	"modelguard/internal/contract"
	"modelguard/internal/extractor"
	"modelguard/internal/report"
	"modelguard/internal/revision"
)

// Exit codes: CI needs to distinguish "your PR has a contract gap"
// from "the tool could not run".
const (
	exitOK        = 0
	exitViolation = 1
	exitInfra     = 2
)

var (
	rootCmd = &cobra.Command{
		Use:   "modelguard",
		Short: "CI gate that flags model changes missing from the API contract",
	}

	cfgPath      string
	verbose      bool
	baseRev      string
	headRev      string
	useWorktree  bool
	contractPath string
	strictMode   bool
	jsonOut      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitInfra)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "modelguard.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	checkCmd.Flags().StringVar(&baseRev, "base", "origin/main", "Base revision (state before the change)")
	checkCmd.Flags().StringVar(&headRev, "head", "HEAD", "Head revision (state after the change)")
	checkCmd.Flags().BoolVar(&useWorktree, "worktree", false, "Compare the base revision against the working tree instead of --head")
	checkCmd.Flags().StringVar(&contractPath, "contract", "", "Contract file path (overrides config)")
	checkCmd.Flags().BoolVar(&strictMode, "strict", false, "Also flag removed models whose schema lingers in the contract")
	checkCmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the verdict as JSON")

	rootCmd.AddCommand(checkCmd)
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare two revisions and validate model changes against the contract",
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		defer logger.Sync() //nolint:errcheck

		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			fail(logger, "invalid configuration", err)
		}
		if contractPath != "" {
			cfg.Contract.Path = contractPath
		}
		if strictMode {
			cfg.Validate.StrictRemovals = true
		}

		runner, err := analysis.NewRunner(cfg, logger)
		if err != nil {
			fail(logger, "setup failed", err)
		}

		oldSnap := revision.NewGit(cfg.Project.Root, baseRev)
		var newSnap revision.Snapshot = revision.NewGit(cfg.Project.Root, headRev)
		if useWorktree {
			newSnap = revision.NewWorkTree(cfg.Project.Root)
		}

		verdict, err := runner.Check(context.Background(), oldSnap, newSnap)
		if err != nil {
			var parseErr *extractor.ParseError
			var contractErr *contract.ContractParseError
			switch {
			case errors.As(err, &parseErr):
				fail(logger, "model source is not parseable", err)
			case errors.As(err, &contractErr):
				fail(logger, "contract is not parseable", err)
			default:
				fail(logger, "check could not run", err)
			}
		}

		if jsonOut {
			out, err := json.MarshalIndent(verdict, "", "  ")
			if err != nil {
				fail(logger, "encode verdict", err)
			}
			fmt.Println(string(out))
		} else {
			fmt.Print(report.RenderMarkdown(verdict))
			report.RenderTable(os.Stdout, verdict)
			fmt.Println()
			if verdict.Passed {
				color.Green("PASS: contract is consistent with model changes")
			} else {
				color.Red("FAIL: %d violation(s) found", len(verdict.Violations))
			}
		}

		logger.Sync() //nolint:errcheck
		if !verdict.Passed {
			os.Exit(exitViolation)
		}
	},
}

func fail(logger *zap.Logger, msg string, err error) {
	logger.Error(msg, zap.Error(err))
	logger.Sync() //nolint:errcheck
	fmt.Fprintf(os.Stderr, "modelguard: %s: %v\n", msg, err)
	os.Exit(exitInfra)
}
