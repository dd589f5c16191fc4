package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/famcalc/internal/breakeven"
	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal [calculator] <input-file>",
	Short: "Find the smallest habit change that reaches a target",
	Long: `Search for the smallest change of one habit (a lever) that makes an input
reach a target score or category. Without --lever every lever of the
calculator is tried and the cheapest one is recommended.

Levers:
  tempo-familiar  weekday_minutes, weekend_minutes, quality
  tempo-tela      screen_minutes
  refeicoes       dinners
  roi-social      weekly_hours

Examples:
  famcalc goal familia.yaml --score 80
  famcalc goal familia.yaml --lever weekday_minutes --category excellent
  famcalc goal refeicoes rotina.json --lever dinners --category high --format json
`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, input, err := loadRequest(args)
		if err != nil {
			return err
		}

		score, _ := cmd.Flags().GetFloat64("score")
		category, _ := cmd.Flags().GetString("category")
		goal := breakeven.Goal{Score: score, Category: domain.Category(category)}

		leverName, _ := cmd.Flags().GetString("lever")
		maxIter, _ := cmd.Flags().GetInt("max-iterations")
		outputFormat, _ := cmd.Flags().GetString("format")

		solver := breakeven.NewSolver(newEngine(cmd), breakeven.SolverOptions{MaxIterations: maxIter})
		var result any
		if leverName == "" {
			result, err = solver.SolveAllLevers(cmd.Context(), input, goal)
		} else {
			lever, perr := breakeven.ParseLever(leverName)
			if perr != nil {
				return perr
			}
			result, err = solver.Solve(cmd.Context(), breakeven.GoalRequest{Base: input, Lever: lever, Goal: goal})
		}
		if err != nil {
			return fmt.Errorf("goal search failed: %w", err)
		}

		out := cmd.OutOrStdout()
		switch strings.ToLower(outputFormat) {
		case "json":
			s, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprintln(out, s)
		case "table", "console", "":
			tf := &breakeven.TableFormatter{}
			switch r := result.(type) {
			case *breakeven.GoalResult:
				fmt.Fprint(out, tf.Format(r))
			case *breakeven.MultiLeverResult:
				fmt.Fprint(out, tf.FormatMulti(r))
			}
		default:
			return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
		}
		return nil
	},
}

func init() {
	goalCmd.Flags().String("lever", "", "Habit to change (default: try every lever of the calculator)")
	goalCmd.Flags().Float64("score", 0, "Target score (0-100)")
	goalCmd.Flags().String("category", "", "Target category (low, medium, high, excellent)")
	goalCmd.Flags().Int("max-iterations", breakeven.DefaultSolverOptions().MaxIterations, "Maximum calculator runs per lever")
	goalCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
}
