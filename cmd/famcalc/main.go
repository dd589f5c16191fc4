package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/famcalc/internal/calculation"
	"github.com/rgehrsitz/famcalc/internal/config"
	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/output"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "famcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "famcalc",
	Short: "Family connection calculators",
	Long: `Scores family time, screen time, family meals, connection moments and the
parenting quiz, and estimates the social return of family programs.`,
	SilenceUsage: true,
}

// newEngine creates a calculation engine, logging to stderr when --debug is set.
func newEngine(cmd *cobra.Command) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine
}

// loadRequest reads a calculation from args: either a request file that
// names its calculator, or a calculator name and a bare input file.
func loadRequest(args []string) (domain.CalculatorName, domain.Input, error) {
	parser := config.NewInputParser()
	if len(args) == 2 {
		name := domain.CalculatorName(args[0])
		input, err := parser.LoadInput(name, args[1])
		return name, input, err
	}
	req, err := parser.LoadFromFile(args[0])
	if err != nil {
		return "", nil, err
	}
	return req.Calculator, req.Input, nil
}

// writeSummary renders s with the named formatter.
func writeSummary(w io.Writer, format string, s domain.Summary) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown output format: %s (valid: %s)", format, strings.Join(output.FormatterNames(), ", "))
	}
	data, err := f.Format(s)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [calculator] <input-file>",
	Short: "Run a calculator on an input file",
	Long: `Run a calculator on a YAML or JSON input file.

Examples:
  famcalc calculate request.yaml
  famcalc calculate tempo-familiar familia.yaml --format markdown
  famcalc calculate quiz-parentalidade respostas.json --format json
`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, input, err := loadRequest(args)
		if err != nil {
			return err
		}
		result, err := newEngine(cmd).Run(input)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return writeSummary(cmd.OutOrStdout(), format, result.Summary())
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [calculator] <input-file>",
	Short: "Validate an input file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _, err := loadRequest(args)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid for %s\n", args[len(args)-1], name)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Log calculation details to stderr")

	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv, markdown, html)")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(quizCmd())
	rootCmd.AddCommand(momentsCmd())
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
