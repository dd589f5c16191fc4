package calculation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moment(t domain.MomentType, minutes float64, date string) domain.MomentInput {
	return domain.MomentInput{Type: t, Duration: minutes, Date: date}
}

func TestConnectionLevelFor(t *testing.T) {
	tests := []struct {
		count    int
		expected domain.ConnectionLevelID
	}{
		{0, domain.LevelBeginner},
		{5, domain.LevelBeginner},
		{6, domain.LevelInProgress},
		{13, domain.LevelEngaged},
		{20, domain.LevelConnected},
		{30, domain.LevelConnected},
		{31, domain.LevelModel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ConnectionLevelFor(tt.count).Level, "count=%d", tt.count)
	}
}

func TestCalculateWeeklyScore(t *testing.T) {
	score := CalculateWeeklyScore([]domain.MomentInput{
		moment(domain.MomentConversation, 10, "2024-03-04"),
		moment(domain.MomentLearning, 10, "2024-03-04"),
	})
	assert.Equal(t, 2.9, score.FinalScore)
	assert.Equal(t, 2, score.Variety)
	assert.False(t, score.VarietyBonus)

	// Short moments earn half points.
	short := CalculateWeeklyScore([]domain.MomentInput{moment(domain.MomentLearning, 5, "2024-03-04")})
	assert.Equal(t, 0.8, short.FinalScore)

	bonus := CalculateWeeklyScore([]domain.MomentInput{
		moment(domain.MomentConversation, 10, "2024-03-04"),
		moment(domain.MomentPlay, 10, "2024-03-04"),
		moment(domain.MomentMeal, 15, "2024-03-05"),
		moment(domain.MomentLearning, 10, "2024-03-05"),
	})
	assert.True(t, bonus.VarietyBonus)
	assert.Equal(t, 5.4, bonus.RawPoints)
	assert.Equal(t, 6.5, bonus.FinalScore)
}

func TestCalculateStreak(t *testing.T) {
	assert.Equal(t, 0, CalculateStreak(nil))

	consecutive := []domain.MomentInput{
		moment(domain.MomentPlay, 10, "2024-03-03"),
		moment(domain.MomentPlay, 10, "2024-03-01"),
		moment(domain.MomentPlay, 10, "2024-03-02T08:00:00Z"),
		moment(domain.MomentMeal, 20, "2024-03-02"),
	}
	assert.Equal(t, 3, CalculateStreak(consecutive))

	gap := append(consecutive, moment(domain.MomentPlay, 10, "2024-03-05"))
	assert.Equal(t, 1, CalculateStreak(gap), "Should count only the run ending at the latest day")
}

func TestWeekStart(t *testing.T) {
	wednesday := time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), WeekStart(wednesday))

	sunday := time.Date(2024, 3, 3, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), WeekStart(sunday))
}

func TestWeeklyDayStatuses(t *testing.T) {
	days := WeeklyDayStatuses([]domain.MomentInput{
		moment(domain.MomentPlay, 10, "2024-03-04"),
		moment(domain.MomentPlay, 20, "2024-03-04"),
		moment(domain.MomentMeal, 15, "2024-03-04"),
		moment(domain.MomentMeal, 15, "2024-02-28"),
	}, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC))

	require.Len(t, days, 7)
	assert.Equal(t, "Domingo", days[0].DayOfWeek)
	assert.False(t, days[0].Achieved)
	assert.Equal(t, "2024-03-04", days[1].Date)
	assert.Equal(t, "Segunda", days[1].DayOfWeek)
	assert.Equal(t, 3, days[1].MomentsCount)
	assert.Equal(t, 45.0, days[1].TotalMinutes)
	assert.Equal(t, []domain.MomentType{domain.MomentPlay, domain.MomentMeal}, days[1].Categories)
	assert.Equal(t, "Sabado", days[6].DayOfWeek)
}

func TestCalculateCategoryBreakdown(t *testing.T) {
	empty := CalculateCategoryBreakdown(nil)
	require.Len(t, empty, 6)
	for _, b := range empty {
		assert.Equal(t, 0, b.Percentage)
	}

	breakdown := CalculateCategoryBreakdown([]domain.MomentInput{
		moment(domain.MomentPlay, 10, "2024-03-04"),
		moment(domain.MomentPlay, 15, "2024-03-04"),
		moment(domain.MomentRoutine, 5, "2024-03-05"),
	})
	assert.Equal(t, domain.MomentPlay, breakdown[1].Category)
	assert.Equal(t, 2, breakdown[1].Count)
	assert.Equal(t, 25.0, breakdown[1].TotalMinutes)
	assert.Equal(t, 67, breakdown[1].Percentage)
	assert.Equal(t, 2.6, breakdown[1].WeightedPoints)
	assert.Equal(t, 33, breakdown[5].Percentage)
}

func TestCalculatePatterns(t *testing.T) {
	empty := CalculatePatterns(nil)
	assert.Nil(t, empty.MostFrequentCategory)
	assert.Equal(t, "-", empty.BestDay)
	assert.Equal(t, "-", empty.HardestDay)

	p := CalculatePatterns([]domain.MomentInput{
		moment(domain.MomentConversation, 10, "2024-03-05"),
		moment(domain.MomentPlay, 10, "2024-03-04"),
		moment(domain.MomentPlay, 30, "2024-03-04"),
	})
	require.NotNil(t, p.MostFrequentCategory)
	assert.Equal(t, domain.MomentPlay, *p.MostFrequentCategory)
	assert.Equal(t, domain.MomentMeal, *p.LeastUsedCategory)
	assert.Equal(t, "Segunda", p.BestDay)
	assert.Equal(t, "Terca", p.HardestDay)
	assert.Equal(t, 0.4, p.AverageMomentsPerDay)
	assert.Equal(t, 7.1, p.AverageMinutesPerDay)
}

func TestCalculatePatterns_AllCategoriesUsed(t *testing.T) {
	var moments []domain.MomentInput
	for _, mt := range domain.AllMomentTypes {
		moments = append(moments, moment(mt, 20, "2024-03-04"))
	}
	moments = append(moments, moment(domain.MomentRoutine, 20, "2024-03-05"))

	p := CalculatePatterns(moments)
	assert.Equal(t, domain.MomentRoutine, *p.MostFrequentCategory)
	assert.Equal(t, domain.MomentOutdoor, *p.LeastUsedCategory, "Should fall back to the last of the sorted counts")
}

func TestCalculateAchievements(t *testing.T) {
	none := CalculateAchievements(nil, 0, 0)
	assert.Empty(t, none.Unlocked)
	assert.Empty(t, none.InProgress)
	require.NotNil(t, none.NextMilestone)
	assert.Equal(t, "firstWeek", none.NextMilestone.ID)

	some := CalculateAchievements([]domain.MomentInput{
		moment(domain.MomentPlay, 10, "2024-03-04"),
		moment(domain.MomentMeal, 20, "2024-03-05"),
	}, 2, 2)
	require.Len(t, some.Unlocked, 1)
	assert.Equal(t, "firstWeek", some.Unlocked[0].ID)
	assert.Len(t, some.InProgress, 5)
	require.NotNil(t, some.NextMilestone)
	assert.Equal(t, "consistency7", some.NextMilestone.ID)
	assert.Equal(t, 2, *some.NextMilestone.Progress)
	assert.Equal(t, 7, *some.NextMilestone.MaxProgress)
}

func TestCalculateYearlyImpact(t *testing.T) {
	impact := CalculateYearlyImpact(10)
	assert.Equal(t, 520, impact.TotalMoments)
	assert.Equal(t, 130, impact.TotalHours)
	assert.Equal(t, 5.4, impact.EquivalentDays)
	assert.Equal(t, 156, impact.MemoryBankEstimate)
}

func TestLevelProgressFor(t *testing.T) {
	p := LevelProgressFor(3)
	assert.Equal(t, 6, p.Target)
	assert.Equal(t, 40, p.Percentage)
	require.NotNil(t, p.NextLevel)
	assert.Equal(t, domain.LevelInProgress, p.NextLevel.Level)

	top := LevelProgressFor(40)
	assert.Equal(t, 100, top.Percentage)
	assert.Equal(t, 40, top.Target)
	assert.Nil(t, top.NextLevel)
}

func TestSuggestedMoments(t *testing.T) {
	assert.Len(t, SuggestedMoments(time.Sunday), 3)
	assert.Len(t, SuggestedMoments(time.Monday), 2)
	assert.Equal(t, "Noite de pizza em familia", SuggestedMoments(time.Friday)[0].Suggestion)
}

func TestCalculateMoments_Empty(t *testing.T) {
	now := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	result, err := CalculateMoments(domain.MomentsInput{}, now)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, domain.CategoryLow, result.Category)
	assert.Equal(t, domain.LevelBeginner, result.ConnectionLevel.Level)
	assert.Equal(t, 20, result.WeeklyView.GoalMoments)
	assert.False(t, result.WeeklyView.GoalAchieved)
	assert.Equal(t, []string{
		"Sua pontuacao semanal e 0 pontos",
		`Voce esta no nivel "Iniciante": Comecando a construir habitos de conexao`,
	}, result.Insights)
	assert.Equal(t, []string{
		"Experimente adicionar momentos de conversa significativa para ganhar bonus de variedade",
		"Tente registrar pelo menos 2 momentos por dia para construir consistencia",
		"Momentos de aprendizado tem o maior impacto (peso 1.5x). Considere adicionar leitura ou estudo junto",
	}, result.Suggestions)
	assert.Len(t, result.Sources, 4)
}

func TestEmptyCollectionsEncodeAsArrays(t *testing.T) {
	none := CalculateAchievements(nil, 0, 0)
	assert.NotNil(t, none.Unlocked)
	assert.NotNil(t, none.InProgress)

	data, err := json.Marshal(none)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"unlocked":[]`)
	assert.Contains(t, string(data), `"inProgress":[]`)

	days := WeeklyDayStatuses(nil, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC))
	require.Len(t, days, 7)
	data, err = json.Marshal(days[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"categories":[]`)
}

func TestCalculateMoments_Week(t *testing.T) {
	target := 3
	now := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	result, err := CalculateMoments(domain.MomentsInput{
		Moments: []domain.MomentInput{
			moment(domain.MomentConversation, 10, "2024-03-04"),
			moment(domain.MomentPlay, 10, "2024-03-05"),
			moment(domain.MomentMeal, 15, "2024-03-06"),
			moment(domain.MomentLearning, 10, "2024-03-06"),
		},
		TargetMomentsPerWeek: &target,
	}, now)
	require.NoError(t, err)

	assert.Equal(t, 6.5, result.Score)
	assert.True(t, result.WeeklyView.GoalAchieved)
	assert.Equal(t, 3, result.WeeklyView.CurrentStreak)
	assert.Equal(t, 45.0, result.WeeklyView.TotalMinutes)
	assert.Equal(t, 2, result.WeeklyView.Days[3].MomentsCount)
	assert.Equal(t, "Sua pontuacao semanal e 6.5 pontos (inclui bonus de variedade!)", result.Insights[0])
	assert.Equal(t, "Voce tem uma sequencia de 3 dias consecutivos com momentos de conexao!", result.Insights[2])
	assert.Equal(t, `Experimente 1 categorias novas para desbloquear a conquista "Familia Diversificada"`, result.Recommendations[2])
}

func TestCalculateMoments_Validation(t *testing.T) {
	target := 0
	_, err := CalculateMoments(domain.MomentsInput{
		Moments: []domain.MomentInput{
			{Type: "hug", Duration: 0, Date: "ontem"},
		},
		TargetMomentsPerWeek: &target,
	}, time.Now())
	require.Error(t, err)

	verrs, ok := err.(domain.ValidationErrors)
	require.True(t, ok)
	assert.Equal(t, []string{
		"moments[0].type",
		"moments[0].duration",
		"moments[0].date",
		"targetMomentsPerWeek",
	}, verrs.Fields())
}
