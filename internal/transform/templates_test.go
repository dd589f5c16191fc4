package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/famcalc/internal/domain"
)

func TestBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	for _, name := range registry.List() {
		tpl, ok := registry.Get(name)
		require.True(t, ok, name)
		assert.True(t, tpl.Calculator.IsValid(), name)
		assert.NotEmpty(t, tpl.Description, name)
		assert.NotEmpty(t, tpl.Transforms, name)
	}

	tpl, ok := registry.Get("MESA_SEM_TELAS")
	require.True(t, ok, "Lookup should be case-insensitive")
	assert.Equal(t, domain.CalculatorMeals, tpl.Calculator)

	quiz := registry.ForCalculator(domain.CalculatorParentQuiz)
	require.Len(t, quiz, len(domain.AllDimensions))
	assert.Equal(t, "foco_consistency", quiz[0].Name)
}

func TestApplyTemplate(t *testing.T) {
	registry := CreateBuiltInTemplates()

	tpl, _ := registry.Get("rotina_completa")
	out, err := ApplyTemplate(familyTime(), tpl)
	require.NoError(t, err)
	ft := out.(*domain.FamilyTimeInput)
	assert.Equal(t, 90.0, ft.WeekdayMinutes)
	assert.Equal(t, 1.5, ft.QualityMultiplier)

	screens, _ := registry.Get("tela_consciente")
	out, err = ApplyTemplate(screenTime(), screens)
	require.NoError(t, err)
	st := out.(*domain.ScreenTimeInput)
	assert.Equal(t, 30.0, st.DailyScreenMinutes)
	assert.Equal(t, 60.0, st.EducationalPercent)
	assert.Equal(t, 0.0, st.BeforeBedMinutes)

	_, err = ApplyTemplate(familyTime(), screens)
	assert.ErrorContains(t, err, "applies to tempo-tela, not tempo-familiar")
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"a", "b"}, ParseTemplateList(" a, ,b "))
}

func TestGetTemplateHelp(t *testing.T) {
	registry := CreateBuiltInTemplates()

	all := GetTemplateHelp(registry, "")
	assert.Contains(t, all, "Tempo Familiar (tempo-familiar):")
	assert.Contains(t, all, "mesa_sem_telas")
	assert.True(t, strings.Index(all, "tempo-familiar") < strings.Index(all, "refeicoes"), "Should follow calculator order")

	meals := GetTemplateHelp(registry, domain.CalculatorMeals)
	assert.Contains(t, meals, "jantar_diario")
	assert.NotContains(t, meals, "menos_1h_tela")

	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry(), ""))
}

func TestTransformRegistry(t *testing.T) {
	registry := NewTransformRegistry()
	assert.Len(t, registry.List(), 11)

	tr, err := registry.ParseTransformSpec("add_meals:dinner=2,lunch=1")
	require.NoError(t, err)
	assert.Equal(t, &AddMeals{Dinner: 2, Lunch: 1}, tr)

	tr, err = registry.ParseTransformSpec("set_meal_habits:screens=never,both_parents=true,conversation=4")
	require.NoError(t, err)
	habits := tr.(*SetMealHabits)
	assert.Equal(t, domain.ScreensNever, *habits.Screens)
	assert.True(t, *habits.BothParentsPresent)
	assert.Equal(t, 4, *habits.ConversationQuality)
	assert.Nil(t, habits.Duration)

	tr, err = registry.ParseTransformSpec("add_daily_moments:type=play,start=2024-03-03")
	require.NoError(t, err)
	daily := tr.(*AddDailyMoments)
	assert.Equal(t, 7, daily.Days)
	assert.Equal(t, 15.0, daily.Duration)

	tr, err = registry.ParseTransformSpec("set_screen_habits:before_bed=0")
	require.NoError(t, err)
	assert.Equal(t, 0.0, *tr.(*SetScreenHabits).BeforeBedMinutes)
	assert.Nil(t, tr.(*SetScreenHabits).CoViewingPercent)
}

func TestTransformRegistry_Errors(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec    string
		wantErr string
	}{
		{"add_meals", "invalid transform spec format"},
		{"nope:x=1", "unknown transform: nope"},
		{"add_meals:dinner", "invalid parameter format"},
		{"add_meals:dinner=two", "invalid dinner value"},
		{"set_quality:", "requires 'multiplier' parameter"},
		{"add_daily_moments:type=play,start=03/03/2024", "invalid start date"},
		{"set_meal_habits:both_parents=maybe", "invalid both_parents value"},
	}
	for _, tt := range tests {
		_, err := registry.ParseTransformSpec(tt.spec)
		assert.ErrorContains(t, err, tt.wantErr, tt.spec)
	}
}
