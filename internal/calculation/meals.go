package calculation

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/numfmt"
)

// Brazilian benchmarks in meals per week.
const (
	mealsNationalAverage = 4
	mealsHighConnection  = 10
)

var mealSources = []string{
	"Hammons, A. J., & Fiese, B. H. (2011). Is frequency of shared family meals related to the nutritional health of children and adolescents? Pediatrics.",
	"CASA Columbia (2011). The Importance of Family Dinners VIII.",
	"Eisenberg, M. E., et al. (2004). Family meals and substance use. Journal of Adolescent Health.",
	"Harvard Research (2005). Family dinner and academic achievement.",
}

// MealsCategoryFor buckets the weekly meal count. Each bound is inclusive.
func MealsCategoryFor(totalMeals int) domain.MealsCategory {
	switch {
	case totalMeals <= 2:
		return domain.MealsDisconnected
	case totalMeals <= 4:
		return domain.MealsBuilding
	case totalMeals <= 6:
		return domain.MealsEngaged
	default:
		return domain.MealsConnected
	}
}

// MealQualityMultiplier combines duration, screens, parents and conversation.
func MealQualityMultiplier(duration domain.MealDuration, screens domain.ScreensPresence, bothParents bool, conversation int) float64 {
	durationFactor := 1.0
	if duration == domain.Duration20To30 || duration == domain.DurationMore30 {
		durationFactor = 1.3
	}

	screensFactor := 0.7
	switch screens {
	case domain.ScreensNever:
		screensFactor = 1.4
	case domain.ScreensSometimes:
		screensFactor = 1.0
	}

	parentsFactor := 1.0
	if bothParents {
		parentsFactor = 1.25
	}

	conversationFactor := 0.8 + float64(conversation-1)*0.1

	return durationFactor * screensFactor * parentsFactor * conversationFactor
}

type protection struct {
	threshold   int
	full        float64
	partial     float64
	label       string
	description string
}

var (
	protectObesity = protection{3, -12, -8, "Reducao Risco de Obesidade",
		"Refeicoes em familia reduzem o risco de sobrepeso e obesidade infantil."}
	protectUnhealthyEating = protection{3, -20, -15, "Reducao Alimentacao Nao Saudavel",
		"Criancas que comem em familia tendem a ter dietas mais equilibradas."}
	protectEatingDisorders = protection{3, -35, -25, "Protecao Contra Transtornos Alimentares",
		"Refeicoes familiares criam relacao saudavel com alimentacao."}
	protectSubstanceUse = protection{5, -15, -10, "Reducao Uso de Substancias",
		"Adolescentes que jantam em familia tem menor probabilidade de usar drogas."}
	protectMentalHealth = protection{5, -25, -15, "Protecao Saude Mental",
		"Refeicoes juntos reduzem risco de depressao e comportamentos de risco."}
)

// factor computes the current reduction (scaled by quality) and the
// potential reduction at maximum quality.
func (p protection) factor(totalMeals int, quality float64) domain.ProtectionFactor {
	base := p.full
	if totalMeals < p.threshold {
		base = numfmt.Round(p.partial * (float64(totalMeals) / float64(p.threshold)))
	}
	return domain.ProtectionFactor{
		Current:     numfmt.RoundInt(base * quality),
		Potential:   numfmt.RoundInt(p.full * 1.5),
		Label:       p.label,
		Description: p.description,
	}
}

// CalculateProtectionFactors derives the five risk reductions.
func CalculateProtectionFactors(totalMeals int, quality float64) domain.ProtectionFactors {
	return domain.ProtectionFactors{
		Obesity:         protectObesity.factor(totalMeals, quality),
		UnhealthyEating: protectUnhealthyEating.factor(totalMeals, quality),
		EatingDisorders: protectEatingDisorders.factor(totalMeals, quality),
		SubstanceUse:    protectSubstanceUse.factor(totalMeals, quality),
		MentalHealth:    protectMentalHealth.factor(totalMeals, quality),
	}
}

// CalculateImpactOfOne describes the effect of one more meal per week.
func CalculateImpactOfOne(currentMeals int) domain.ImpactOfOne {
	impact := domain.ImpactOfOne{
		YearlyHours:        52,   // about an hour per meal with prep and cleanup
		VocabularyExposure: 2600, // about 50 words a meal
		RiskReduction:      5,
	}
	if currentMeals < 5 {
		impact.RiskReduction = 10
	}
	switch {
	case currentMeals < 3:
		impact.Description = "Adicionar uma refeicao pode iniciar a construcao de habitos protetores significativos."
	case currentMeals < 5:
		impact.Description = "Mais uma refeicao pode desbloquear protecoes adicionais contra uso de substancias."
	default:
		impact.Description = "Cada refeicao adicional fortalece os vinculos e a comunicacao familiar."
	}
	return impact
}

// MealsNationalComparison places the family in a percentile band.
func MealsNationalComparison(totalMeals int) domain.MealsComparison {
	var percentile int
	switch {
	case totalMeals <= 2:
		percentile = 15
	case totalMeals <= 4:
		percentile = 40
	case totalMeals <= 6:
		percentile = 65
	case totalMeals <= 10:
		percentile = 85
	default:
		percentile = 95
	}
	return domain.MealsComparison{
		YourFamily:             totalMeals,
		NationalAverage:        mealsNationalAverage,
		HighConnectionFamilies: mealsHighConnection,
		Percentile:             percentile,
	}
}

var weeklyTips = map[int]string{
	1: "Comece com o jantar - e a refeicao mais facil de reunir todos.",
	2: "Adicione um cafe da manha no fim de semana - momento calmo para conversar.",
	3: "Tente manter a consistencia mesmo nos dias mais corridos.",
	4: "Celebre o progresso! Cada refeicao juntos e uma vitoria.",
}

func weeklyTip(week, goal int) string {
	if tip, ok := weeklyTips[week]; ok {
		return tip
	}
	return fmt.Sprintf("Meta: %d refeicoes esta semana", goal)
}

var baseGoldenRules = []string{
	"Sem telas na mesa - celulares, tablets e TV ficam longe",
	"Todos ajudam - mesmo criancas pequenas podem participar",
	"Conversas positivas - evite criticas e discussoes durante a refeicao",
}

// GoldenRules returns the house rules for a meals category.
func GoldenRules(category domain.MealsCategory) []string {
	var rules []string
	switch category {
	case domain.MealsDisconnected:
		rules = []string{
			"Comece com apenas 1 refeicao por semana - consistencia importa mais que quantidade",
			`Escolha um dia fixo para ser "sagrado" - o dia da refeicao em familia`,
		}
	case domain.MealsBuilding:
		rules = []string{
			"Adicione gradualmente - uma nova refeicao a cada 2 semanas",
			"Envolva as criancas no planejamento do cardapio",
		}
	case domain.MealsEngaged:
		rules = []string{
			"Experimente temas semanais para as conversas",
			`Crie tradicoes como "pizza friday" ou "sopao de domingo"`,
		}
	default:
		rules = []string{
			"Convide amigos e familiares para expandir a experiencia",
			"Ensine receitas de familia - transmita tradicoes",
		}
	}
	return append(rules, baseGoldenRules...)
}

// MealsActionPlan sets a goal and spreads the increase over four weeks.
func MealsActionPlan(currentMeals int, category domain.MealsCategory) domain.ActionPlan {
	var goal int
	switch {
	case currentMeals <= 2:
		goal = 5
	case currentMeals <= 4:
		goal = 7
	case currentMeals <= 6:
		goal = 10
	default:
		goal = min(currentMeals+3, 14)
	}

	increment := int(math.Ceil(float64(goal-currentMeals) / 4))
	plan := make([]domain.WeeklyMilestone, 0, 4)
	for week := 1; week <= 4; week++ {
		weekGoal := min(currentMeals+increment*week, goal)
		plan = append(plan, domain.WeeklyMilestone{
			Week: week,
			Goal: weekGoal,
			Tip:  weeklyTip(week, weekGoal),
		})
	}

	return domain.ActionPlan{
		CurrentMeals: currentMeals,
		GoalMeals:    goal,
		WeeklyPlan:   plan,
		GoldenRules:  GoldenRules(category),
	}
}

// ConversationStarters returns the table questions.
func ConversationStarters() []domain.ConversationStarter {
	return []domain.ConversationStarter{
		{Category: "Dia a Dia", Question: "Qual foi a melhor parte do seu dia hoje?"},
		{Category: "Dia a Dia", Question: "O que te fez rir hoje?"},
		{Category: "Sentimentos", Question: "Como voce esta se sentindo sobre [evento proximo]?"},
		{Category: "Sentimentos", Question: "O que te deixou orgulhoso de si mesmo recentemente?"},
		{Category: "Sonhos", Question: "Se pudesse ter qualquer superpoder, qual seria?"},
		{Category: "Sonhos", Question: "O que voce gostaria de aprender a fazer?"},
		{Category: "Familia", Question: "Qual e sua lembranca favorita de familia?"},
		{Category: "Familia", Question: "O que podemos fazer juntos no proximo fim de semana?"},
		{Category: "Reflexao", Question: "Se pudesse mudar uma coisa no mundo, o que seria?"},
		{Category: "Reflexao", Question: "Quem e alguem que voce admira e por que?"},
	}
}

// MealsYearlyProjection converts weekly connection minutes to a year.
func MealsYearlyProjection(weeklyMinutes int) domain.YearlyProjection {
	yearlyHours := float64(weeklyMinutes*52) / 60
	return domain.YearlyProjection{
		Hours: numfmt.RoundInt(yearlyHours),
		Days:  numfmt.Round1(yearlyHours / 24),
	}
}

func mealsInsights(totalMeals int, quality float64, cmp domain.MealsComparison) []string {
	insights := []string{fmt.Sprintf("Sua familia faz %d refeicoes juntos por semana", totalMeals)}

	switch {
	case totalMeals > cmp.NationalAverage:
		diff := totalMeals - cmp.NationalAverage
		insights = append(insights, fmt.Sprintf("Isso e %d %s a mais que a media nacional (%d/semana)",
			diff, plural(diff, "refeicao", "refeicoes"), cmp.NationalAverage))
	case totalMeals < cmp.NationalAverage:
		diff := cmp.NationalAverage - totalMeals
		insights = append(insights, fmt.Sprintf("Isso e %d %s a menos que a media nacional (%d/semana)",
			diff, plural(diff, "refeicao", "refeicoes"), cmp.NationalAverage))
	default:
		insights = append(insights, "Voce esta na media nacional de refeicoes em familia")
	}

	insights = append(insights, fmt.Sprintf("Voce esta no percentil %d das familias brasileiras", cmp.Percentile))

	switch {
	case quality >= 1.5:
		insights = append(insights, "A qualidade das suas refeicoes e excelente - potencializando os beneficios!")
	case quality < 1.0:
		insights = append(insights, "Melhorar a qualidade (menos telas, mais conversa) pode multiplicar os beneficios")
	}
	return insights
}

func mealsRecommendations(category domain.MealsCategory, screens domain.ScreensPresence, duration domain.MealDuration, conversation int) []string {
	var recs []string
	switch category {
	case domain.MealsDisconnected:
		recs = append(recs, "Priorize adicionar pelo menos 3 refeicoes em familia por semana - este e o limiar para beneficios significativos")
	case domain.MealsBuilding:
		recs = append(recs, `Voce esta no caminho certo! Tente adicionar mais 1-2 refeicoes semanais para alcancar o nivel "engajado"`)
	case domain.MealsEngaged:
		recs = append(recs, "Excelente frequencia! Foque agora em melhorar a qualidade das interacoes")
	default:
		recs = append(recs, "Parabens! Mantenha a consistencia e considere envolver mais familia estendida")
	}

	switch screens {
	case domain.ScreensAlways:
		recs = append(recs, "Remover telas durante as refeicoes pode aumentar os beneficios em ate 40%")
	case domain.ScreensSometimes:
		recs = append(recs, `Tente estabelecer a regra de "sem telas" para todas as refeicoes em familia`)
	}

	if duration == domain.DurationLess10 || duration == domain.Duration10To20 {
		recs = append(recs, "Estender as refeicoes para 20+ minutos permite conversas mais significativas")
	}

	switch {
	case conversation <= 2:
		recs = append(recs, "Use as sugestoes de conversa para melhorar o engajamento durante as refeicoes")
	case conversation <= 3:
		recs = append(recs, "Experimente perguntas mais profundas para elevar a qualidade das conversas")
	}
	return limitStrings(recs, 4)
}

// CalculateMeals scores how often and how well a family eats together.
func CalculateMeals(in domain.MealsInput) (domain.MealsResult, error) {
	if err := in.Validate(); err != nil {
		return domain.MealsResult{}, err
	}

	total := in.TotalMeals()
	category := MealsCategoryFor(total)
	quality := MealQualityMultiplier(in.AverageDuration, in.ScreensPresent, in.BothParentsPresent, in.ConversationQuality)
	connectionMinutes := total * in.AverageDuration.Minutes()
	qualityScore := int(math.Min(numfmt.Round(quality*50), 100))
	comparison := MealsNationalComparison(total)

	return domain.MealsResult{
		Score:    qualityScore,
		Category: category.Category(),
		CurrentStatus: domain.MealsStatus{
			TotalMealsPerWeek:      total,
			Category:               category,
			CategoryLabel:          category.Label(),
			TotalConnectionMinutes: connectionMinutes,
			QualityScore:           qualityScore,
			QualityMultiplier:      numfmt.Round2(quality),
		},
		ProtectionFactors:    CalculateProtectionFactors(total, quality),
		ImpactOfOne:          CalculateImpactOfOne(total),
		NationalComparison:   comparison,
		ActionPlan:           MealsActionPlan(total, category),
		ConversationStarters: ConversationStarters(),
		YearlyProjection:     MealsYearlyProjection(connectionMinutes),
		Insights:             mealsInsights(total, quality, comparison),
		Recommendations:      mealsRecommendations(category, in.ScreensPresent, in.AverageDuration, in.ConversationQuality),
		Sources:              append([]string(nil), mealSources...),
	}, nil
}
