package calculation

import (
	"sort"
	"time"

	"github.com/rgehrsitz/famcalc/internal/domain"
)

var badgeDefinitions = []domain.Badge{
	{ID: "first-moment", Name: "Primeiro Passo", Description: "Registrou seu primeiro momento de conexão", Icon: "🌱", Kind: domain.BadgeMilestone, Threshold: 1},
	{ID: "streak-3", Name: "Sequência de 3 Dias", Description: "Registrou momentos por 3 dias consecutivos", Icon: "🔥", Kind: domain.BadgeStreak, Threshold: 3},
	{ID: "streak-7", Name: "Sequência de 7 Dias", Description: "Registrou momentos por 7 dias consecutivos", Icon: "⭐", Kind: domain.BadgeStreak, Threshold: 7},
	{ID: "streak-30", Name: "Sequência de 30 Dias", Description: "Registrou momentos por 30 dias consecutivos", Icon: "🏆", Kind: domain.BadgeStreak, Threshold: 30},
	{ID: "moments-10", Name: "10 Momentos", Description: "Registrou 10 momentos de conexão", Icon: "💫", Kind: domain.BadgeMilestone, Threshold: 10},
	{ID: "moments-50", Name: "50 Momentos", Description: "Registrou 50 momentos de conexão", Icon: "🌟", Kind: domain.BadgeMilestone, Threshold: 50},
	{ID: "moments-100", Name: "100 Momentos", Description: "Registrou 100 momentos de conexão", Icon: "💎", Kind: domain.BadgeMilestone, Threshold: 100},
	{ID: "conversation-master", Name: "Mestre da Conversa", Description: "Registrou 20 momentos de conversa", Icon: "💬", Kind: domain.BadgeSpecial, Threshold: 20, MomentType: domain.MomentConversation},
	{ID: "activity-partner", Name: "Parceiro de Atividades", Description: "Registrou 20 atividades em família", Icon: "🎮", Kind: domain.BadgeSpecial, Threshold: 20, MomentType: domain.MomentPlay},
	{ID: "caring-heart", Name: "Coração Carinhoso", Description: "Registrou 20 momentos de afeto", Icon: "❤️", Kind: domain.BadgeSpecial, Threshold: 20, MomentType: domain.MomentRoutine},
	{ID: "support-pillar", Name: "Pilar de Apoio", Description: "Registrou 20 momentos de apoio", Icon: "🤝", Kind: domain.BadgeSpecial, Threshold: 20, MomentType: domain.MomentLearning},
	{ID: "celebrator", Name: "Celebrador", Description: "Registrou 10 celebrações em família", Icon: "🎉", Kind: domain.BadgeSpecial, Threshold: 10, MomentType: domain.MomentMeal},
	{ID: "explorer", Name: "Explorador", Description: "Usou todas as 6 calculadoras", Icon: "🧭", Kind: domain.BadgeCalculators, Threshold: len(domain.AllCalculators)},
	{ID: "top-family", Name: "Família Nota 10", Description: "Obteve pontuação excelente em qualquer calculadora", Icon: "🎯", Kind: domain.BadgeTopScore, Threshold: 1},
}

// LongestStreak returns the longest run of consecutive calendar days with at
// least one moment. Unparseable dates are ignored.
func LongestStreak(moments []domain.MomentInput) int {
	seen := make(map[time.Time]bool)
	var days []time.Time
	for _, m := range moments {
		d, err := m.ParseDay()
		if err != nil || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// EvaluateBadges checks every badge against a family's whole moment log and
// the calculations it has run. Affection, support and celebration moments
// are counted as routine, learning and meal moments. Progress is capped at
// the badge threshold.
func EvaluateBadges(logged []domain.LoggedMoment, runs []domain.CalculatorRun) []domain.Badge {
	inputs := make([]domain.MomentInput, 0, len(logged))
	byType := make(map[domain.MomentType]int)
	for _, m := range logged {
		inputs = append(inputs, m.Input())
		byType[m.Type]++
	}
	streak := LongestStreak(inputs)

	used := make(map[domain.CalculatorName]bool)
	topScores := 0
	for _, r := range runs {
		used[r.Calculator] = true
		if r.Category == domain.CategoryExcellent {
			topScores++
		}
	}

	out := make([]domain.Badge, 0, len(badgeDefinitions))
	for _, b := range badgeDefinitions {
		var value int
		switch b.Kind {
		case domain.BadgeMilestone:
			value = len(logged)
		case domain.BadgeStreak:
			value = streak
		case domain.BadgeSpecial:
			value = byType[b.MomentType]
		case domain.BadgeCalculators:
			value = len(used)
		case domain.BadgeTopScore:
			value = topScores
		}
		b.Progress = min(value, b.Threshold)
		b.Unlocked = value >= b.Threshold
		out = append(out, b)
	}
	return out
}
