package calculation

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/numfmt"
)

var momentCategories = map[domain.MomentType]domain.MomentCategoryInfo{
	domain.MomentConversation: {
		Type: domain.MomentConversation, Label: "Conversa Significativa", MinDuration: 5, Weight: 1.4,
		Examples: []string{"Perguntar sobre o dia", "Discutir sentimentos", "Planejar juntos"}, Icon: "💬",
	},
	domain.MomentPlay: {
		Type: domain.MomentPlay, Label: "Brincadeira/Jogo", MinDuration: 10, Weight: 1.3,
		Examples: []string{"Jogo de tabuleiro", "Esporte", "Brincadeira livre"}, Icon: "🎮",
	},
	domain.MomentMeal: {
		Type: domain.MomentMeal, Label: "Refeicao Juntos", MinDuration: 15, Weight: 1.2,
		Examples: []string{"Jantar em familia", "Cafe da manha", "Lanche compartilhado"}, Icon: "🍽️",
	},
	domain.MomentLearning: {
		Type: domain.MomentLearning, Label: "Momento de Aprendizado", MinDuration: 10, Weight: 1.5,
		Examples: []string{"Leitura", "Dever de casa", "Ensinar habilidade nova"}, Icon: "📚",
	},
	domain.MomentOutdoor: {
		Type: domain.MomentOutdoor, Label: "Atividade ao Ar Livre", MinDuration: 15, Weight: 1.3,
		Examples: []string{"Caminhada", "Parque", "Passeio de bicicleta"}, Icon: "🌳",
	},
	domain.MomentRoutine: {
		Type: domain.MomentRoutine, Label: "Ritual de Rotina", MinDuration: 5, Weight: 1.0,
		Examples: []string{"Historia antes de dormir", "Cafe da manha junto", "Oracao/meditacao"}, Icon: "🌙",
	},
}

// MomentCategories returns the scoring table in display order.
func MomentCategories() []domain.MomentCategoryInfo {
	out := make([]domain.MomentCategoryInfo, 0, len(domain.AllMomentTypes))
	for _, t := range domain.AllMomentTypes {
		out = append(out, momentCategories[t])
	}
	return out
}

var connectionLevels = []domain.ConnectionLevel{
	{Level: domain.LevelBeginner, Label: "Iniciante", Description: "Comecando a construir habitos de conexao", MinMoments: 1, MaxMoments: 5},
	{Level: domain.LevelInProgress, Label: "Em Progresso", Description: "Desenvolvendo consistencia nos momentos de conexao", MinMoments: 6, MaxMoments: 12},
	{Level: domain.LevelEngaged, Label: "Engajado", Description: "Boa frequencia de momentos de conexao", MinMoments: 13, MaxMoments: 19},
	{Level: domain.LevelConnected, Label: "Conectado", Description: "Alto nivel de presenca e conexao familiar", MinMoments: 20, MaxMoments: 30},
	{Level: domain.LevelModel, Label: "Modelo", Description: "Inspiracao para outras familias! Excelente conexao.", MinMoments: 31},
}

// ConnectionLevels returns the level bands from lowest to highest.
func ConnectionLevels() []domain.ConnectionLevel {
	return append([]domain.ConnectionLevel(nil), connectionLevels...)
}

type achievementDef struct {
	id, name, description, condition string
	points                           int
}

var achievementDefinitions = []achievementDef{
	{"firstWeek", "Primeiro Passo", "Complete sua primeira semana de tracking", "weeksTracked >= 1", 10},
	{"consistency7", "Semana Conectada", "Registre ao menos 1 momento por dia durante 7 dias", "consecutiveDays >= 7", 25},
	{"variety", "Familia Diversificada", "Registre momentos em 5+ categorias diferentes na semana", "categoriesThisWeek >= 5", 20},
	{"habit21", "Construtor de Habitos", "Mantenha tracking por 21 dias consecutivos", "consecutiveDays >= 21", 50},
	{"habit66", "Habito Consolidado", "Mantenha tracking por 66 dias consecutivos", "consecutiveDays >= 66", 100},
	{"quality20", "Familia Conectada", "Alcance 20+ momentos de qualidade em uma semana", "momentsThisWeek >= 20", 30},
}

var dayNames = [7]string{"Domingo", "Segunda", "Terca", "Quarta", "Quinta", "Sexta", "Sabado"}

var momentSources = []string{
	"Gottman Institute (2020). The Magic of Everyday Moments.",
	"Lally, P., et al. (2010). How are habits formed. European Journal of Social Psychology.",
	"Pew Research Center (2021). Parenting Children in the Age of Screens.",
	"Abbott, L. (2019). Time Spent Together: Family Activities and Adolescent Well-being. Journal of Family Psychology.",
}

// ConnectionLevelFor returns the highest level whose minimum count is met.
// Counts below the first minimum still map to the first level.
func ConnectionLevelFor(count int) domain.ConnectionLevel {
	for i := len(connectionLevels) - 1; i >= 0; i-- {
		if count >= connectionLevels[i].MinMoments {
			return connectionLevels[i]
		}
	}
	return connectionLevels[0]
}

// momentPoints is the category weight, halved when the moment is shorter
// than the category minimum.
func momentPoints(m domain.MomentInput) float64 {
	info := momentCategories[m.Type]
	base := 0.5
	if m.Duration >= info.MinDuration {
		base = 1
	}
	return base * info.Weight
}

// CalculateWeeklyScore sums moment points and applies a 1.2x bonus for four
// or more distinct categories.
func CalculateWeeklyScore(moments []domain.MomentInput) domain.WeeklyScore {
	total := 0.0
	unique := make(map[domain.MomentType]bool)
	for _, m := range moments {
		total += momentPoints(m)
		unique[m.Type] = true
	}

	bonus := len(unique) >= 4
	final := total
	if bonus {
		final = total * 1.2
	}
	return domain.WeeklyScore{
		RawPoints:    numfmt.Round1(total),
		FinalScore:   numfmt.Round1(final),
		Variety:      len(unique),
		MomentsCount: len(moments),
		VarietyBonus: bonus,
	}
}

// CalculateYearlyImpact projects weekly moments over 52 weeks at an average
// of 15 minutes each.
func CalculateYearlyImpact(weeklyMoments int) domain.YearlyImpact {
	yearly := weeklyMoments * 52
	hours := float64(yearly*15) / 60
	return domain.YearlyImpact{
		TotalMoments:       yearly,
		TotalHours:         numfmt.RoundInt(hours),
		EquivalentDays:     numfmt.Round1(hours / 24),
		MemoryBankEstimate: int(math.Floor(float64(yearly) * 0.3)),
	}
}

// CalculateStreak counts consecutive days, ending at the most recent logged
// day, on which at least one moment was logged.
func CalculateStreak(moments []domain.MomentInput) int {
	if len(moments) == 0 {
		return 0
	}

	seen := make(map[string]bool)
	days := make([]string, 0, len(moments))
	for _, m := range moments {
		d := m.Day()
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Strings(days)

	streak := 1
	for i := len(days) - 1; i > 0; i-- {
		current, err1 := time.Parse(time.DateOnly, days[i])
		previous, err2 := time.Parse(time.DateOnly, days[i-1])
		if err1 != nil || err2 != nil {
			break
		}
		if int(math.Floor(current.Sub(previous).Hours()/24)) != 1 {
			break
		}
		streak++
	}
	return streak
}

// WeekStart returns the Sunday that starts the week containing now, as a
// UTC calendar date.
func WeekStart(now time.Time) time.Time {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -int(now.Weekday()))
}

// WeeklyDayStatuses builds the seven day view starting at weekStart.
func WeeklyDayStatuses(moments []domain.MomentInput, weekStart time.Time) []domain.DayStatus {
	days := make([]domain.DayStatus, 0, 7)
	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		key := date.Format(time.DateOnly)

		status := domain.DayStatus{Date: key, DayOfWeek: dayNames[date.Weekday()], Categories: []domain.MomentType{}}
		seen := make(map[domain.MomentType]bool)
		for _, m := range moments {
			if m.Day() != key {
				continue
			}
			status.MomentsCount++
			status.TotalMinutes += m.Duration
			if !seen[m.Type] {
				seen[m.Type] = true
				status.Categories = append(status.Categories, m.Type)
			}
		}
		status.Achieved = status.MomentsCount >= 1
		days = append(days, status)
	}
	return days
}

// CalculateCategoryBreakdown reports every category, used or not.
func CalculateCategoryBreakdown(moments []domain.MomentInput) []domain.CategoryBreakdown {
	stats := make(map[domain.MomentType]*domain.CategoryBreakdown, len(domain.AllMomentTypes))
	for _, t := range domain.AllMomentTypes {
		stats[t] = &domain.CategoryBreakdown{Category: t}
	}
	for _, m := range moments {
		s := stats[m.Type]
		s.Count++
		s.TotalMinutes += m.Duration
		s.WeightedPoints += momentPoints(m)
	}

	divisor := float64(max(len(moments), 1))
	out := make([]domain.CategoryBreakdown, 0, len(domain.AllMomentTypes))
	for _, t := range domain.AllMomentTypes {
		s := *stats[t]
		s.WeightedPoints = numfmt.Round1(s.WeightedPoints)
		s.Percentage = numfmt.RoundInt(float64(s.Count) / divisor * 100)
		out = append(out, s)
	}
	return out
}

// weekdayName names the weekday of a moment's calendar day.
func weekdayName(m domain.MomentInput) string {
	t, err := m.ParseDay()
	if err != nil {
		return "-"
	}
	return dayNames[t.Weekday()]
}

// CalculatePatterns finds category and weekday habits. Ties keep the order
// in which categories and days first appear.
func CalculatePatterns(moments []domain.MomentInput) domain.WeeklyPattern {
	if len(moments) == 0 {
		return domain.WeeklyPattern{BestDay: "-", HardestDay: "-"}
	}

	counts := make(map[domain.MomentType]int)
	var order []domain.MomentType
	for _, m := range moments {
		if counts[m.Type] == 0 {
			order = append(order, m.Type)
		}
		counts[m.Type]++
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })

	most := order[0]
	least := order[len(order)-1]
	for _, t := range domain.AllMomentTypes {
		if counts[t] == 0 {
			least = t
			break
		}
	}

	type dayStat struct {
		name  string
		count int
	}
	var byDay []*dayStat
	index := make(map[string]*dayStat)
	totalMinutes := 0.0
	for _, m := range moments {
		name := weekdayName(m)
		ds, ok := index[name]
		if !ok {
			ds = &dayStat{name: name}
			index[name] = ds
			byDay = append(byDay, ds)
		}
		ds.count++
		totalMinutes += m.Duration
	}

	best, hardest := "-", "-"
	maxCount, minCount := 0, math.MaxInt
	for _, ds := range byDay {
		if ds.count > maxCount {
			maxCount = ds.count
			best = ds.name
		}
		if ds.count < minCount {
			minCount = ds.count
			hardest = ds.name
		}
	}

	return domain.WeeklyPattern{
		MostFrequentCategory: &most,
		LeastUsedCategory:    &least,
		BestDay:              best,
		HardestDay:           hardest,
		AverageMomentsPerDay: numfmt.Round1(float64(len(moments)) / 7),
		AverageMinutesPerDay: numfmt.Round1(totalMinutes / 7),
	}
}

func progressOf(value, limit int) (*int, *int) {
	p := min(value, limit)
	return &p, &limit
}

// CalculateAchievements evaluates the weekly achievements. The next
// milestone is the first one in progress, or else the first not started.
func CalculateAchievements(moments []domain.MomentInput, streak, uniqueCategories int) domain.Achievements {
	weekly := len(moments)
	all := make([]domain.Achievement, 0, len(achievementDefinitions))
	for _, def := range achievementDefinitions {
		a := domain.Achievement{
			ID:          def.id,
			Name:        def.name,
			Description: def.description,
			Condition:   def.condition,
			Points:      def.points,
		}
		switch def.id {
		case "firstWeek":
			a.Unlocked = weekly > 0
		case "consistency7":
			a.Unlocked = streak >= 7
			a.Progress, a.MaxProgress = progressOf(streak, 7)
		case "variety":
			a.Unlocked = uniqueCategories >= 5
			a.Progress, a.MaxProgress = progressOf(uniqueCategories, 5)
		case "habit21":
			a.Unlocked = streak >= 21
			a.Progress, a.MaxProgress = progressOf(streak, 21)
		case "habit66":
			a.Unlocked = streak >= 66
			a.Progress, a.MaxProgress = progressOf(streak, 66)
		case "quality20":
			a.Unlocked = weekly >= 20
			a.Progress, a.MaxProgress = progressOf(weekly, 20)
		}
		all = append(all, a)
	}

	out := domain.Achievements{Unlocked: []domain.Achievement{}, InProgress: []domain.Achievement{}}
	var notStarted []domain.Achievement
	for _, a := range all {
		progress := 0
		if a.Progress != nil {
			progress = *a.Progress
		}
		switch {
		case a.Unlocked:
			out.Unlocked = append(out.Unlocked, a)
		case progress > 0:
			out.InProgress = append(out.InProgress, a)
		default:
			notStarted = append(notStarted, a)
		}
	}

	switch {
	case len(out.InProgress) > 0:
		next := out.InProgress[0]
		out.NextMilestone = &next
	case len(notStarted) > 0:
		next := notStarted[0]
		out.NextMilestone = &next
	}
	return out
}

func momentSuggestions(p domain.WeeklyPattern, weekly, unique int) []string {
	var out []string

	if unique < 4 {
		for _, t := range domain.AllMomentTypes {
			if p.MostFrequentCategory != nil && t == *p.MostFrequentCategory {
				continue
			}
			out = append(out, fmt.Sprintf("Experimente adicionar momentos de %s para ganhar bonus de variedade",
				strings.ToLower(momentCategories[t].Label)))
			break
		}
	}

	switch {
	case weekly < 10:
		out = append(out, "Tente registrar pelo menos 2 momentos por dia para construir consistencia")
	case weekly < 20:
		out = append(out, `Voce esta quase la! Mais alguns momentos para atingir o nivel "Conectado"`)
	}

	if p.HardestDay != "-" {
		out = append(out, fmt.Sprintf("%s parece ser seu dia mais dificil. Planeje um momento especifico para esse dia", p.HardestDay))
	}

	if p.MostFrequentCategory == nil || *p.MostFrequentCategory != domain.MomentLearning {
		out = append(out, "Momentos de aprendizado tem o maior impacto (peso 1.5x). Considere adicionar leitura ou estudo junto")
	}
	return limitStrings(out, 4)
}

func momentInsights(score domain.WeeklyScore, level domain.ConnectionLevel, p domain.WeeklyPattern, streak int) []string {
	bonus := ""
	if score.VarietyBonus {
		bonus = " (inclui bonus de variedade!)"
	}
	out := []string{
		fmt.Sprintf("Sua pontuacao semanal e %s pontos%s", numfmt.Number(score.FinalScore), bonus),
		fmt.Sprintf(`Voce esta no nivel "%s": %s`, level.Label, level.Description),
	}

	if streak > 0 {
		s := plural(streak, "", "s")
		out = append(out, fmt.Sprintf("Voce tem uma sequencia de %d dia%s consecutivo%s com momentos de conexao!", streak, s, s))
	}
	if p.MostFrequentCategory != nil {
		out = append(out, fmt.Sprintf(`Seu tipo favorito de momento e "%s"`, momentCategories[*p.MostFrequentCategory].Label))
	}
	if p.AverageMomentsPerDay > 0 {
		out = append(out, fmt.Sprintf("Voce registra em media %s momentos por dia (%s minutos)",
			numfmt.Number(p.AverageMomentsPerDay), numfmt.Number(p.AverageMinutesPerDay)))
	}
	return out
}

func momentRecommendations(level domain.ConnectionLevel, unique int) []string {
	var out []string
	switch level.Level {
	case domain.LevelBeginner:
		out = append(out,
			"Comece estabelecendo 1-2 momentos diarios como habito",
			"Escolha um horario fixo (ex: antes de dormir) para garantir consistencia")
	case domain.LevelInProgress:
		out = append(out,
			"Aumente gradualmente para 3 momentos por dia",
			"Tente variar as categorias para ganhar bonus de variedade")
	case domain.LevelEngaged:
		out = append(out,
			"Excelente progresso! Foque em aumentar a qualidade dos momentos",
			"Envolva outros membros da familia no registro")
	case domain.LevelConnected:
		out = append(out,
			"Parabens! Mantenha a consistencia que voce construiu",
			"Considere ensinar outras familias sobre seus habitos")
	case domain.LevelModel:
		out = append(out,
			"Voce e uma inspiracao! Compartilhe suas estrategias",
			"Continue documentando para criar memorias duradouras")
	}
	if unique < 5 {
		out = append(out, fmt.Sprintf(`Experimente %d categorias novas para desbloquear a conquista "Familia Diversificada"`, 5-unique))
	}
	return limitStrings(out, 4)
}

// MomentsCategory buckets the weekly moment count. Each bound is inclusive.
func MomentsCategory(count int) domain.Category {
	switch {
	case count <= 5:
		return domain.CategoryLow
	case count <= 12:
		return domain.CategoryMedium
	case count <= 20:
		return domain.CategoryHigh
	default:
		return domain.CategoryExcellent
	}
}

// LevelProgressFor reports the distance from count to the next level.
func LevelProgressFor(count int) domain.LevelProgress {
	current := ConnectionLevelFor(count)
	idx := 0
	for i, l := range connectionLevels {
		if l.Level == current.Level {
			idx = i
			break
		}
	}
	if idx == len(connectionLevels)-1 {
		return domain.LevelProgress{Current: count, Target: count, Percentage: 100}
	}

	next := connectionLevels[idx+1]
	inLevel := float64(count - current.MinMoments)
	span := float64(next.MinMoments - current.MinMoments)
	return domain.LevelProgress{
		Current:    count,
		Target:     next.MinMoments,
		Percentage: int(math.Min(numfmt.Round(inLevel/span*100), 100)),
		NextLevel:  &next,
	}
}

var suggestedMoments = map[time.Weekday][]domain.SuggestedMoment{
	time.Sunday: {
		{Category: domain.MomentMeal, Suggestion: "Almoco de domingo em familia"},
		{Category: domain.MomentOutdoor, Suggestion: "Passeio no parque ou praca"},
		{Category: domain.MomentPlay, Suggestion: "Jogo de tabuleiro a tarde"},
	},
	time.Monday: {
		{Category: domain.MomentRoutine, Suggestion: "Cafe da manha tranquilo antes da escola"},
		{Category: domain.MomentConversation, Suggestion: "Pergunte sobre as expectativas da semana"},
	},
	time.Tuesday: {
		{Category: domain.MomentLearning, Suggestion: "Ajude com o dever de casa"},
		{Category: domain.MomentConversation, Suggestion: "Converse sobre algo que aprendeu hoje"},
	},
	time.Wednesday: {
		{Category: domain.MomentPlay, Suggestion: "Brincadeira rapida apos o jantar"},
		{Category: domain.MomentRoutine, Suggestion: "Ritual de leitura antes de dormir"},
	},
	time.Thursday: {
		{Category: domain.MomentConversation, Suggestion: "Planeje o fim de semana juntos"},
		{Category: domain.MomentLearning, Suggestion: "Ensine uma habilidade nova"},
	},
	time.Friday: {
		{Category: domain.MomentMeal, Suggestion: "Noite de pizza em familia"},
		{Category: domain.MomentPlay, Suggestion: "Sessao de cinema em casa"},
	},
	time.Saturday: {
		{Category: domain.MomentOutdoor, Suggestion: "Atividade ao ar livre pela manha"},
		{Category: domain.MomentPlay, Suggestion: "Jogo ou esporte em familia"},
		{Category: domain.MomentMeal, Suggestion: "Cozinhem algo juntos"},
	},
}

// SuggestedMoments returns ideas for the given weekday.
func SuggestedMoments(day time.Weekday) []domain.SuggestedMoment {
	return append([]domain.SuggestedMoment(nil), suggestedMoments[day]...)
}

// CalculateMoments scores a week of logged moments. now anchors the
// Sunday-first week view.
func CalculateMoments(in domain.MomentsInput, now time.Time) (domain.MomentsResult, error) {
	if err := in.Validate(); err != nil {
		return domain.MomentsResult{}, err
	}

	moments := in.Moments
	count := len(moments)
	score := CalculateWeeklyScore(moments)
	level := ConnectionLevelFor(count)
	streak := CalculateStreak(moments)
	patterns := CalculatePatterns(moments)

	totalMinutes := 0.0
	for _, m := range moments {
		totalMinutes += m.Duration
	}

	return domain.MomentsResult{
		Score:    score.FinalScore,
		Category: MomentsCategory(count),
		WeeklyView: domain.WeeklyView{
			Days:          WeeklyDayStatuses(moments, WeekStart(now)),
			TotalMoments:  count,
			TotalMinutes:  totalMinutes,
			GoalMoments:   in.Target(),
			GoalAchieved:  count >= in.Target(),
			CurrentStreak: streak,
		},
		WeeklyScore:       score,
		ConnectionLevel:   level,
		LevelProgress:     LevelProgressFor(count),
		CategoryBreakdown: CalculateCategoryBreakdown(moments),
		Achievements:      CalculateAchievements(moments, streak, score.Variety),
		Patterns:          patterns,
		YearlyImpact:      CalculateYearlyImpact(count),
		Suggestions:       momentSuggestions(patterns, count, score.Variety),
		Insights:          momentInsights(score, level, patterns, streak),
		Recommendations:   momentRecommendations(level, score.Variety),
		Sources:           append([]string(nil), momentSources...),
	}, nil
}
