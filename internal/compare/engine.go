package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/famcalc/internal/calculation"
	"github.com/rgehrsitz/famcalc/internal/config"
	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/transform"
)

// CompareEngine runs the scenarios of a scenario file and compares them.
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// WhatIfOptions configures a comparison of one input against changed
// copies of itself.
type WhatIfOptions struct {
	Templates []string // built-in template names
	// Transforms are applied together as a single custom alternative.
	Transforms []transform.InputTransform
}

// CustomScenarioSuffix names the alternative built from ad hoc transforms.
const CustomScenarioSuffix = "personalizado"

// Compare compares every scenario of sf with its base.
func (ce *CompareEngine) Compare(ctx context.Context, sf *config.ScenarioFile) (*ComparisonSet, error) {
	names := make([]string, 0, len(sf.Scenarios))
	for _, s := range sf.Scenarios {
		names = append(names, s.Name)
	}
	return ce.CompareScenarios(ctx, sf, sf.Base.Name, names)
}

// CompareScenarios compares the named scenarios of sf against baseName.
// Any scenario of the file, the base included, may serve as the base.
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	sf *config.ScenarioFile,
	baseName string,
	alternativeNames []string,
) (*ComparisonSet, error) {

	base, ok := sf.Scenario(baseName)
	if !ok {
		return nil, fmt.Errorf("base scenario %s not found", baseName)
	}
	baseSummary, err := ce.run(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(base.Name, base.Description, baseSummary)

	alternatives := []ComparisonResult{}
	for _, name := range alternativeNames {
		if name == baseName {
			continue
		}
		alt, ok := sf.Scenario(name)
		if !ok {
			return nil, fmt.Errorf("alternative scenario %s not found", name)
		}
		altSummary, err := ce.run(ctx, alt)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", name, err)
		}
		altResult := ce.MetricsCalculator.CalculateMetrics(alt.Name, alt.Description, altSummary)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		Calculator:         sf.Calculator,
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

// CompareWhatIf compares base against one alternative per template, plus
// one for the ad hoc transforms when any are given.
func (ce *CompareEngine) CompareWhatIf(
	ctx context.Context,
	base config.NamedInput,
	options WhatIfOptions,
) (*ComparisonSet, error) {

	if len(options.Templates) == 0 && len(options.Transforms) == 0 {
		return nil, fmt.Errorf("no templates or transforms to compare")
	}
	calculator, ok := transform.CalculatorOf(base.Input)
	if !ok {
		return nil, fmt.Errorf("unsupported input type %T", base.Input)
	}
	if base.Name == "" {
		base.Name = "base"
	}

	baseSummary, err := ce.run(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(base.Name, base.Description, baseSummary)

	var scenarios []config.NamedInput
	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}
		modified, err := transform.ApplyTemplate(base.Input, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		scenarios = append(scenarios, config.NamedInput{
			Name:        base.Name + "_" + template.Name,
			Description: template.Description,
			Input:       modified,
		})
	}
	if len(options.Transforms) > 0 {
		modified, err := transform.ApplyTransforms(base.Input, options.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply transforms: %w", err)
		}
		descriptions := make([]string, 0, len(options.Transforms))
		for _, t := range options.Transforms {
			descriptions = append(descriptions, t.Description())
		}
		scenarios = append(scenarios, config.NamedInput{
			Name:        base.Name + "_" + CustomScenarioSuffix,
			Description: strings.Join(descriptions, "; "),
			Input:       modified,
		})
	}

	alternatives := []ComparisonResult{}
	for _, alt := range scenarios {
		altSummary, err := ce.run(ctx, alt)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", alt.Name, err)
		}
		altResult := ce.MetricsCalculator.CalculateMetrics(alt.Name, alt.Description, altSummary)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		Calculator:         calculator,
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

func (ce *CompareEngine) run(ctx context.Context, s config.NamedInput) (*domain.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := ce.CalcEngine.Run(s.Input)
	if err != nil {
		return nil, err
	}
	summary := result.Summary()
	return &summary, nil
}
