package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/famcalc/internal/compare"
	"github.com/rgehrsitz/famcalc/internal/config"
	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/transform"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <scenario-file>",
	Short: "Compare input scenarios of one calculator",
	Long: `Compare a base scenario against alternative scenarios of the same calculator,
or against what-if changes built from templates and transforms.

Examples:
  famcalc compare cenarios.yaml
  famcalc compare cenarios.yaml --base mais-jantares --format csv
  famcalc compare refeicoes.yaml --with mesa_sem_telas,jantar_diario
  famcalc compare refeicoes.yaml --transform add_meals:dinner=2 --transform set_meal_habits:screens=never
  famcalc compare --list-templates --calculator refeicoes
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if list, _ := cmd.Flags().GetBool("list-templates"); list {
			calculator, _ := cmd.Flags().GetString("calculator")
			fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates(), domain.CalculatorName(calculator)))
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
		}
		inputFile := args[0]

		baseName, _ := cmd.Flags().GetString("base")
		templatesStr, _ := cmd.Flags().GetString("with")
		specs, _ := cmd.Flags().GetStringArray("transform")

		compareEngine := compare.NewCompareEngine(newEngine(cmd))

		var comparisonSet *compare.ComparisonSet
		if templatesStr != "" || len(specs) > 0 {
			options := compare.WhatIfOptions{Templates: transform.ParseTemplateList(templatesStr)}
			registry := transform.NewTransformRegistry()
			for _, spec := range specs {
				t, err := registry.ParseTransformSpec(spec)
				if err != nil {
					return err
				}
				options.Transforms = append(options.Transforms, t)
			}

			base, err := loadWhatIfBase(inputFile, baseName)
			if err != nil {
				return err
			}
			comparisonSet, err = compareEngine.CompareWhatIf(cmd.Context(), base, options)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
		} else {
			sf, err := config.NewInputParser().LoadScenarios(inputFile)
			if err != nil {
				return err
			}
			if baseName != "" {
				names := []string{sf.Base.Name}
				for _, s := range sf.Scenarios {
					names = append(names, s.Name)
				}
				comparisonSet, err = compareEngine.CompareScenarios(cmd.Context(), sf, baseName, names)
			} else {
				comparisonSet, err = compareEngine.Compare(cmd.Context(), sf)
			}
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
		}
		comparisonSet.ConfigPath = inputFile

		outputFormat, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(outputFormat) {
		case "csv":
			s, err := (&compare.CSVFormatter{}).Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format CSV: %w", err)
			}
			fmt.Fprint(out, s)
		case "json":
			s, err := (&compare.JSONFormatter{Pretty: true}).Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprint(out, s)
		case "compact":
			fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(comparisonSet))
		case "table", "console", "":
			fmt.Fprint(out, (&compare.TableFormatter{}).Format(comparisonSet))
		default:
			return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
		}
		return nil
	},
}

// loadWhatIfBase reads the base of a what-if comparison. The file may be a
// scenario file, whose base or named scenario is used, or a plain
// calculation request.
func loadWhatIfBase(filename, baseName string) (config.NamedInput, error) {
	parser := config.NewInputParser()

	sf, scenarioErr := parser.LoadScenarios(filename)
	if scenarioErr == nil {
		if baseName == "" {
			return sf.Base, nil
		}
		s, ok := sf.Scenario(baseName)
		if !ok {
			return config.NamedInput{}, fmt.Errorf("base scenario %s not found", baseName)
		}
		return s, nil
	}

	req, requestErr := parser.LoadFromFile(filename)
	if requestErr != nil {
		return config.NamedInput{}, fmt.Errorf("failed to load %s: %w", filename, errors.Join(scenarioErr, requestErr))
	}
	name := baseName
	if name == "" {
		name = "base"
	}
	return config.NamedInput{Name: name, Input: req.Input}, nil
}

func init() {
	compareCmd.Flags().String("base", "", "Scenario to compare against (default: the file's base)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().String("with", "", "Comma-separated list of what-if templates to compare")
	compareCmd.Flags().StringArray("transform", nil, "Ad hoc transform as name:key=value,... (repeatable)")
	compareCmd.Flags().Bool("list-templates", false, "List the available what-if templates")
	compareCmd.Flags().String("calculator", "", "Only list templates of this calculator")
}
