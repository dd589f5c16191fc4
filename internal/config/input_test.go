package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/famcalc/internal/calculation"
	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	req, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, req, "Should return nil request")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	path := writeFile(t, "invalid.yaml", "invalid: yaml: content: [unclosed")

	req, err := NewInputParser().LoadFromFile(path)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, req)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestInputParser_LoadFromFile_ValidYAML(t *testing.T) {
	path := writeFile(t, "family.yaml", `
calculator: tempo-familiar
input:
  weekday_minutes: 60
  weekend_minutes: 120
  quality_multiplier: 1.2
  family_size: 4
`)

	req, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, domain.CalculatorFamilyTime, req.Calculator)
	in, ok := req.Input.(*domain.FamilyTimeInput)
	require.True(t, ok, "Should decode a family time input")
	assert.Equal(t, 60.0, in.WeekdayMinutes)
	assert.Equal(t, 1.2, in.QualityMultiplier)
	assert.Equal(t, 4, in.FamilySize)
}

func TestInputParser_LoadFromFile_ValidJSON(t *testing.T) {
	path := writeFile(t, "quiz.json", `{
  "calculator": "quiz-parentalidade",
  "input": {"answers": {
    "q1": 3, "q2": 3, "q3": 2, "q4": 2, "q5": 1, "q6": 3, "q7": 2, "q8": 2,
    "q9": 1, "q10": 2, "q11": 3, "q12": 2, "q13": 0, "q14": 1, "q15": 2
  }}
}`)

	req, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	in, ok := req.Input.(*domain.QuizInput)
	require.True(t, ok)
	assert.Len(t, in.Answers, 15)
	assert.Equal(t, 3, in.Answers["q1"])
}

func TestInputParser_Parse_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.Parse([]byte("input:\n  weekday_minutes: 10\n"), false)
	assert.EqualError(t, err, "calculator is required")

	_, err = parser.Parse([]byte("calculator: nada\ninput: {}\n"), false)
	assert.ErrorIs(t, err, calculation.ErrUnknownCalculator)

	_, err = parser.Parse([]byte("calculator: refeicoes\n"), false)
	assert.EqualError(t, err, "input is required for refeicoes")

	_, err = parser.Parse([]byte(`{"calculator":"tempo-tela","input":{"childAge":1,"dailyScreenMinutes":60,"educationalPercent":0,"coViewingPercent":0,"beforeBedMinutes":0}}`), true)
	require.Error(t, err)
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs), "Should wrap validation errors")
	assert.Contains(t, verrs.Fields(), "childAge")
}

func TestInputParser_LoadScenarios(t *testing.T) {
	path := writeFile(t, "scenarios.yaml", `
calculator: tempo-tela
base:
  name: atual
  description: Rotina atual
  input: {child_age: 8, daily_screen_minutes: 240, educational_percent: 0, co_viewing_percent: 0, before_bed_minutes: 0}
scenarios:
  - name: menos-tela
    description: Reduzir uma hora
    input: {child_age: 8, daily_screen_minutes: 180, educational_percent: 0, co_viewing_percent: 0, before_bed_minutes: 0}
  - input:
      child_age: 8
      daily_screen_minutes: 120
      educational_percent: 0
      co_viewing_percent: 50
      before_bed_minutes: 0
`)

	file, err := NewInputParser().LoadScenarios(path)
	require.NoError(t, err)

	assert.Equal(t, domain.CalculatorScreenTime, file.Calculator)
	assert.Equal(t, "atual", file.Base.Name)
	require.Len(t, file.Scenarios, 2)
	assert.Equal(t, "Reduzir uma hora", file.Scenarios[0].Description)
	assert.Equal(t, "scenario-2", file.Scenarios[1].Name)

	in := file.Scenarios[1].Input.(*domain.ScreenTimeInput)
	assert.Equal(t, 50.0, in.CoViewingPercent)

	s, ok := file.Scenario("menos-tela")
	require.True(t, ok)
	assert.Equal(t, 180.0, s.Input.(*domain.ScreenTimeInput).DailyScreenMinutes)
	_, ok = file.Scenario("missing")
	assert.False(t, ok)
}

func TestInputParser_ParseScenarios_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.ParseScenarios([]byte(`{"calculator":"refeicoes","base":{"name":"a","input":{}}}`), true)
	assert.EqualError(t, err, "no scenarios provided")

	_, err = parser.ParseScenarios([]byte(`
calculator: roi-social
base: {name: a, input: {program_investment: 5, families_reached: 1, avg_income_increase: 0, health_savings: 0, education_improvement: 0}}
scenarios:
  - {name: a, input: {program_investment: 6, families_reached: 1, avg_income_increase: 0, health_savings: 0, education_improvement: 0}}
`), false)
	assert.EqualError(t, err, `duplicate scenario name "a"`)

	_, err = parser.ParseScenarios([]byte(`
calculator: roi-social
base: {name: a, input: {program_investment: 5, families_reached: 1, avg_income_increase: 0, health_savings: 0, education_improvement: 0}}
scenarios:
  - {name: b, input: {program_investment: 6, families_reached: 0, avg_income_increase: 0, health_savings: 0, education_improvement: 0}}
`), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario b validation failed")
}

func TestInputParser_LoadInput(t *testing.T) {
	parser := NewInputParser()

	path := writeFile(t, "familia.yaml", "weekday_minutes: 60\nweekend_minutes: 120\nquality_multiplier: 1\nfamily_size: 4\n")
	input, err := parser.LoadInput(domain.CalculatorFamilyTime, path)
	require.NoError(t, err)
	ft, ok := input.(*domain.FamilyTimeInput)
	require.True(t, ok)
	assert.Equal(t, 120.0, ft.WeekendMinutes)

	path = writeFile(t, "refeicoes.json", `{"breakfastPerWeek": 0, "lunchPerWeek": 0, "dinnerPerWeek": 3, "averageDuration": "20to30", "screensPresent": "never", "bothParentsPresent": false, "conversationQuality": 4}`)
	_, err = parser.LoadInput(domain.CalculatorMeals, path)
	assert.NoError(t, err)

	_, err = parser.ParseInput(domain.CalculatorFamilyTime, []byte(""), false)
	assert.EqualError(t, err, "input is required for tempo-familiar")

	_, err = parser.ParseInput("nada", []byte("{}"), true)
	assert.True(t, errors.Is(err, calculation.ErrUnknownCalculator))

	_, err = parser.ParseInput(domain.CalculatorFamilyTime, []byte("weekday_minutes: 600\nweekend_minutes: 120\nquality_multiplier: 1\nfamily_size: 4\n"), false)
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{"weekdayMinutes"}, verrs.Fields())
}

func TestInputParser_MissingFields(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name       string
		calculator domain.CalculatorName
		data       string
		asJSON     bool
		missing    []string
	}{
		{
			name:       "family time JSON",
			calculator: domain.CalculatorFamilyTime,
			data:       `{"qualityMultiplier":1,"familySize":2}`,
			asJSON:     true,
			missing:    []string{"weekdayMinutes", "weekendMinutes"},
		},
		{
			name:       "family time YAML with null",
			calculator: domain.CalculatorFamilyTime,
			data:       "weekday_minutes: 60\nweekend_minutes:\nquality_multiplier: 1\nfamily_size: 4\n",
			missing:    []string{"weekendMinutes"},
		},
		{
			name:       "screen time YAML",
			calculator: domain.CalculatorScreenTime,
			data:       "child_age: 8\ndaily_screen_minutes: 120\n",
			missing:    []string{"educationalPercent", "coViewingPercent", "beforeBedMinutes"},
		},
		{
			name:       "social return JSON",
			calculator: domain.CalculatorSocialROI,
			data:       `{"programInvestment":5,"familiesReached":1}`,
			asJSON:     true,
			missing:    []string{"avgIncomeIncrease", "healthSavings", "educationImprovement"},
		},
		{
			name:       "meals JSON without the bool",
			calculator: domain.CalculatorMeals,
			data:       `{"breakfastPerWeek":0,"lunchPerWeek":0,"dinnerPerWeek":3,"averageDuration":"20to30","screensPresent":"never","conversationQuality":4}`,
			asJSON:     true,
			missing:    []string{"bothParentsPresent"},
		},
		{
			name:       "moments YAML",
			calculator: domain.CalculatorMoments,
			data:       "target_moments_per_week: 10\n",
			missing:    []string{"moments"},
		},
		{
			name:       "quiz JSON",
			calculator: domain.CalculatorParentQuiz,
			data:       `{"answers":null}`,
			asJSON:     true,
			missing:    []string{"answers"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseInput(tt.calculator, []byte(tt.data), tt.asJSON)
			var verrs domain.ValidationErrors
			require.True(t, errors.As(err, &verrs), "Should report missing fields, got %v", err)
			assert.Equal(t, tt.missing, verrs.Fields())
			assert.Equal(t, "Campo obrigatório", verrs[0].Message)
		})
	}
}

func TestInputParser_OptionalFieldsMayBeOmitted(t *testing.T) {
	parser := NewInputParser()

	input, err := parser.ParseInput(domain.CalculatorSocialROI, []byte(
		"program_investment: 5\nfamilies_reached: 1\navg_income_increase: 0\nhealth_savings: 0\neducation_improvement: 0\n"), false)
	require.NoError(t, err)
	assert.Nil(t, input.(*domain.SocialROIInput).AverageChildAge)

	input, err = parser.ParseInput(domain.CalculatorMoments, []byte(`{"moments":[]}`), true)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTargetMomentsPerWeek, input.(*domain.MomentsInput).Target())
}
