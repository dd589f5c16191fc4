package calculation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.NotNil(t, engine.Now, "Should initialize clock")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	// nil falls back to the no-op logger
	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestNewInput(t *testing.T) {
	tests := []struct {
		name     domain.CalculatorName
		expected domain.Input
	}{
		{domain.CalculatorFamilyTime, &domain.FamilyTimeInput{}},
		{domain.CalculatorScreenTime, &domain.ScreenTimeInput{}},
		{domain.CalculatorSocialROI, &domain.SocialROIInput{}},
		{domain.CalculatorMeals, &domain.MealsInput{}},
		{domain.CalculatorMoments, &domain.MomentsInput{}},
		{domain.CalculatorParentQuiz, &domain.QuizInput{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			input, err := NewInput(tt.name)
			require.NoError(t, err)
			assert.IsType(t, tt.expected, input)
		})
	}

	_, err := NewInput("calculadora-inexistente")
	assert.ErrorIs(t, err, ErrUnknownCalculator)
}

func TestCalculationEngine_Run(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	result, err := engine.Run(&domain.FamilyTimeInput{
		WeekdayMinutes:    60,
		WeekendMinutes:    120,
		QualityMultiplier: 1,
		FamilySize:        4,
	})
	require.NoError(t, err)

	ft, ok := result.(domain.FamilyTimeResult)
	require.True(t, ok, "Should return a family time result")
	assert.Equal(t, domain.CategoryMedium, ft.Category)
	assert.Equal(t, domain.CalculatorFamilyTime, result.Summary().Calculator)
	assert.Contains(t, logger.messages, "DEBUG: %s: score=%v category=%s")
}

func TestCalculationEngine_Run_ValidationFailure(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	result, err := engine.Run(&domain.ScreenTimeInput{ChildAge: 1, DailyScreenMinutes: 60})
	require.Error(t, err)
	assert.Nil(t, result)

	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs), "Should return validation errors")
	assert.Equal(t, []string{"childAge"}, verrs.Fields())
	assert.Equal(t, []string{"WARN: rejected %T: %v"}, logger.messages)
}

func TestCalculationEngine_Run_NilInput(t *testing.T) {
	engine := NewCalculationEngine()

	_, err := engine.Run(nil)
	assert.ErrorIs(t, err, ErrUnknownCalculator)
}

func TestCalculationEngine_Run_ValueInput(t *testing.T) {
	engine := NewCalculationEngine()
	in := domain.FamilyTimeInput{WeekdayMinutes: 60, WeekendMinutes: 120, QualityMultiplier: 1, FamilySize: 4}

	byValue, err := engine.Run(in)
	require.NoError(t, err)
	byPointer, err := engine.Run(&in)
	require.NoError(t, err)
	assert.Equal(t, byPointer, byValue)

	_, err = engine.Run(domain.ScreenTimeInput{ChildAge: 1})
	var verrs domain.ValidationErrors
	assert.True(t, errors.As(err, &verrs), "Value inputs are validated too")
}

func TestCalculationEngine_Run_TypedNilInput(t *testing.T) {
	engine := NewCalculationEngine()

	inputs := []domain.Input{
		(*domain.FamilyTimeInput)(nil),
		(*domain.ScreenTimeInput)(nil),
		(*domain.SocialROIInput)(nil),
		(*domain.MealsInput)(nil),
		(*domain.MomentsInput)(nil),
		(*domain.QuizInput)(nil),
	}
	for _, in := range inputs {
		require.NotPanics(t, func() {
			result, err := engine.Run(in)
			assert.ErrorIs(t, err, ErrUnknownCalculator)
			assert.Nil(t, result)
		}, "%T", in)
	}
}

func TestCalculationEngine_RunNamed(t *testing.T) {
	engine := NewCalculationEngine()
	engine.Now = func() time.Time { return time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC) }

	body := `{"moments":[
		{"type":"conversation","duration":10,"date":"2024-03-04"},
		{"type":"play","duration":20,"date":"2024-03-05T19:30:00Z"}
	]}`
	result, err := engine.RunNamed(domain.CalculatorMoments, func(v any) error {
		return json.NewDecoder(strings.NewReader(body)).Decode(v)
	})
	require.NoError(t, err)

	mr, ok := result.(domain.MomentsResult)
	require.True(t, ok)
	assert.Equal(t, 2, mr.WeeklyView.TotalMoments)
	assert.Equal(t, "2024-03-03", mr.WeeklyView.Days[0].Date)
	assert.Equal(t, 2, mr.WeeklyView.CurrentStreak)
}

func TestCalculationEngine_RunNamed_Errors(t *testing.T) {
	engine := NewCalculationEngine()

	_, err := engine.RunNamed("desconhecida", func(any) error { return nil })
	assert.ErrorIs(t, err, ErrUnknownCalculator)

	decodeErr := errors.New("boom")
	_, err = engine.RunNamed(domain.CalculatorMeals, func(any) error { return decodeErr })
	assert.ErrorIs(t, err, decodeErr)
	assert.Contains(t, err.Error(), "failed to decode refeicoes input")
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}
