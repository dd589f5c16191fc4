package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rgehrsitz/famcalc/internal/calculation"
	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/spf13/cobra"
)

func quizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Parenting quiz catalogue",
	}

	questions := &cobra.Command{
		Use:   "questions",
		Short: "List the quiz questions and answer scale",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"questions": calculation.QuizQuestions(),
					"scale":     calculation.PointLabels,
				})
			}

			var dim domain.Dimension
			for _, q := range calculation.QuizQuestions() {
				if q.Dimension != dim {
					dim = q.Dimension
					fmt.Fprintf(out, "\n%s\n", calculation.DimensionLabel(dim))
				}
				fmt.Fprintf(out, "  %-4s %s\n", q.ID, q.Text)
			}

			points := make([]int, 0, len(calculation.PointLabels))
			for p := range calculation.PointLabels {
				points = append(points, p)
			}
			sort.Ints(points)
			fmt.Fprintln(out, "\nEscala:")
			for _, p := range points {
				fmt.Fprintf(out, "  %d = %s\n", p, calculation.PointLabels[p])
			}
			return nil
		},
	}
	questions.Flags().Bool("json", false, "Print the catalogue as JSON")

	cmd.AddCommand(questions)
	return cmd
}
