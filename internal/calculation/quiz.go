package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/numfmt"
)

// PointLabels names the answer scale.
var PointLabels = map[int]string{
	0: "Nunca",
	1: "Raramente",
	2: "Às vezes",
	3: "Frequentemente",
}

type dimensionConfig struct {
	maxPoints int
	questions []string
	weight    float64
	label     string

	low, medium, high string
	strength, growth  string
	action, impact    string
	recommendation    string
}

var dimensionConfigs = map[domain.Dimension]dimensionConfig{
	domain.DimensionPresence: {
		maxPoints: 12,
		questions: []string{"q1", "q2", "q3", "q4"},
		weight:    1.0,
		label:     "Presenca",
		low:       "Oportunidade significativa de aumentar sua presenca fisica no dia-a-dia dos seus filhos.",
		medium:    "Voce esta presente, mas ha espaco para aumentar a frequencia dos momentos juntos.",
		high:      "Otima presenca! Seus filhos sentem que voce esta la para eles.",
		strength:  "Presenca fisica consistente no dia-a-dia dos filhos",
		growth:    "Aumentar a frequencia de momentos presentes com os filhos",
		action:    "Adicione 2 refeicoes familiares por semana",
		impact:    "Aumento de 15-20% no tempo de qualidade e fortalecimento do vinculo",

		recommendation: "Pesquisas mostram que quantidade tambem importa - aumente gradualmente o tempo juntos",
	},
	domain.DimensionQuality: {
		maxPoints: 12,
		questions: []string{"q5", "q6", "q7", "q8"},
		weight:    1.2,
		label:     "Qualidade",
		low:       "Foque em melhorar a qualidade das interacoes, mesmo que sejam curtas.",
		medium:    "Boa qualidade de interacao. Experimente reduzir distracoes para momentos ainda melhores.",
		high:      "Excelente qualidade de conexao! Suas interacoes sao significativas.",
		strength:  "Interacoes de alta qualidade e atencao focada",
		growth:    "Melhorar a qualidade das interacoes reduzindo distracoes",
		action:    "Crie uma zona livre de telas durante as refeicoes",
		impact:    "Melhoria significativa na qualidade das conversas e conexao emocional",

		recommendation: "Pratique a escuta ativa: repita o que ouviu antes de responder",
	},
	domain.DimensionConsistency: {
		maxPoints: 12,
		questions: []string{"q9", "q10", "q11", "q12"},
		weight:    1.1,
		label:     "Consistencia",
		low:       "Criar rituais e rotinas previsiveis pode fortalecer muito o vinculo familiar.",
		medium:    "Voce tem consistencia moderada. Rituais diarios podem solidificar ainda mais.",
		high:      "Seus filhos sabem o que esperar de voce. Isso cria seguranca emocional.",
		strength:  "Rotinas e rituais que criam seguranca emocional",
		growth:    "Criar mais rituais e rotinas previsiveis",
		action:    "Estabeleca 1 ritual semanal inegociavel (ex: noite de jogos)",
		impact:    "Criacao de memorias duradouras e senso de seguranca para os filhos",

		recommendation: "Rituais criam seguranca emocional - comece com um e expanda",
	},
	domain.DimensionDigital: {
		maxPoints: 9,
		questions: []string{"q13", "q14", "q15"},
		weight:    1.3,
		label:     "Desconexao Digital",
		low:       "A desconexao digital e uma area critica para melhorar. Telas competem pela atencao familiar.",
		medium:    "Bom progresso na desconexao digital. Continue fortalecendo zonas livres de telas.",
		high:      "Excelente gestao digital! Voce prioriza a presenca sobre as telas.",
		strength:  "Excelente gestao do uso de tecnologia em familia",
		growth:    "Estabelecer limites mais claros para uso de tecnologia",
		action:    "Implemente a regra de sem celular no quarto a noite",
		impact:    "Melhoria no sono familiar e reducao de distracoes nos momentos importantes",

		recommendation: "Modele o comportamento: seus filhos copiam seu uso de tecnologia",
	},
}

// DimensionLabel returns the display name of a dimension.
func DimensionLabel(d domain.Dimension) string {
	return dimensionConfigs[d].label
}

var quizQuestions = []domain.QuizQuestion{
	{ID: "q1", Dimension: domain.DimensionPresence,
		Text: "Voce janta junto com seus filhos durante a semana?",
		Hint: "Considere refeicoes onde todos estao presentes a mesa."},
	{ID: "q2", Dimension: domain.DimensionPresence,
		Text: "Voce dedica tempo nao-estruturado para brincadeiras com seus filhos?",
		Hint: "Tempo livre sem atividades planejadas, apenas curtindo juntos."},
	{ID: "q3", Dimension: domain.DimensionPresence,
		Text: "Voce esteve presente em eventos importantes dos seus filhos (escola, esportes, apresentacoes)?",
		Hint: "Reunioes escolares, jogos, recitais, formaturas."},
	{ID: "q4", Dimension: domain.DimensionPresence,
		Text: "Voce tem momentos de conversa individual com cada filho durante a semana?",
		Hint: "Tempo um-a-um, sem outros irmaos ou distrações."},

	{ID: "q5", Dimension: domain.DimensionQuality,
		Text: "Suas interacoes com seus filhos envolvem atencao focada (sem celular ou TV)?",
		Hint: "Estar 100% presente, sem distrações digitais."},
	{ID: "q6", Dimension: domain.DimensionQuality,
		Text: "Voce demonstra afeto fisico com seus filhos (abracos, beijos, carinho)?",
		Hint: "Expressoes fisicas de amor e cuidado."},
	{ID: "q7", Dimension: domain.DimensionQuality,
		Text: "Voce faz perguntas abertas e realmente ouve as respostas dos seus filhos?",
		Hint: `Perguntas como "Como foi seu dia?" com interesse genuino.`},
	{ID: "q8", Dimension: domain.DimensionQuality,
		Text: "Voce comemora pequenas conquistas e progressos dos seus filhos?",
		Hint: "Reconhecer esforços, nao apenas grandes realizacoes."},

	{ID: "q9", Dimension: domain.DimensionConsistency,
		Text: "Voce tem rituais diarios com seus filhos (historia antes de dormir, oracao, cafe juntos)?",
		Hint: "Habitos que se repetem todos os dias ou semanas."},
	{ID: "q10", Dimension: domain.DimensionConsistency,
		Text: "Suas regras e limites sao consistentes e previsiveis?",
		Hint: "Seus filhos sabem o que esperar das consequencias."},
	{ID: "q11", Dimension: domain.DimensionConsistency,
		Text: "Voce cumpre os compromissos e promessas que faz aos seus filhos?",
		Hint: "Se prometeu, entrega. Confiabilidade."},
	{ID: "q12", Dimension: domain.DimensionConsistency,
		Text: "Seus filhos sabem o que esperar de voce em termos de disponibilidade?",
		Hint: "Rotina previsivel de quando voce esta disponivel."},

	{ID: "q13", Dimension: domain.DimensionDigital,
		Text: "Voce evita usar o celular durante o tempo em familia?",
		Hint: "Deixar o celular de lado durante refeicoes e momentos juntos."},
	{ID: "q14", Dimension: domain.DimensionDigital,
		Text: "Seus filhos tem regras claras sobre tempo de tela (horarios, limites)?",
		Hint: "Limites definidos para dispositivos eletronicos."},
	{ID: "q15", Dimension: domain.DimensionDigital,
		Text: "Dispositivos eletronicos (TV, tablets, celulares) nao participam das refeicoes em familia?",
		Hint: "Refeicoes livres de telas para todos."},
}

// QuizQuestions returns the 15 questions in order.
func QuizQuestions() []domain.QuizQuestion {
	return append([]domain.QuizQuestion(nil), quizQuestions...)
}

var quizProfiles = map[domain.QuizProfile]domain.QuizProfileResult{
	domain.ProfileAlert: {
		Type:    domain.ProfileAlert,
		Label:   "Familia em Alerta",
		Message: "Mudancas urgentes sao necessarias para fortalecer os vinculos familiares. Pequenos passos consistentes podem fazer grande diferenca.",
	},
	domain.ProfileBuilding: {
		Type:    domain.ProfileBuilding,
		Label:   "Familia em Construcao",
		Message: "A base existe e e solida. Foque em fortalecer as conexoes existentes e criar novos habitos positivos.",
	},
	domain.ProfileEngaged: {
		Type:    domain.ProfileEngaged,
		Label:   "Familia Engajada",
		Message: "Voce esta no caminho certo! Pequenos refinamentos podem elevar ainda mais a qualidade do tempo em familia.",
	},
	domain.ProfileConnected: {
		Type:    domain.ProfileConnected,
		Label:   "Familia Conectada",
		Message: "Excelente! Voce e um modelo de parentalidade presente. Continue inspirando e compartilhe suas praticas com outras familias.",
	},
}

// QuizProfileFor maps a raw total (0-45) to a profile: up to 15 is alert,
// up to 25 building, up to 35 engaged and above that connected.
func QuizProfileFor(total int) domain.QuizProfileResult {
	switch {
	case total <= 15:
		return quizProfiles[domain.ProfileAlert]
	case total <= 25:
		return quizProfiles[domain.ProfileBuilding]
	case total <= 35:
		return quizProfiles[domain.ProfileEngaged]
	default:
		return quizProfiles[domain.ProfileConnected]
	}
}

// CalculateDimensionScores sums the answers of each dimension.
func CalculateDimensionScores(answers map[string]int) map[domain.Dimension]domain.DimensionScore {
	scores := make(map[domain.Dimension]domain.DimensionScore, len(domain.AllDimensions))
	for _, d := range domain.AllDimensions {
		cfg := dimensionConfigs[d]
		score := 0
		for _, id := range cfg.questions {
			score += answers[id]
		}
		pct := numfmt.RoundInt(float64(score) / float64(cfg.maxPoints) * 100)

		desc := cfg.high
		switch {
		case pct < 40:
			desc = cfg.low
		case pct < 70:
			desc = cfg.medium
		}

		scores[d] = domain.DimensionScore{
			Score:       score,
			Max:         cfg.maxPoints,
			Percentage:  pct,
			Label:       cfg.label,
			Description: desc,
		}
	}
	return scores
}

// sortedDimensions orders dimensions by percentage. Ties keep declaration
// order.
func sortedDimensions(scores map[domain.Dimension]domain.DimensionScore, descending bool) []domain.Dimension {
	dims := append([]domain.Dimension(nil), domain.AllDimensions...)
	sort.SliceStable(dims, func(i, j int) bool {
		a, b := scores[dims[i]].Percentage, scores[dims[j]].Percentage
		if descending {
			return a > b
		}
		return a < b
	})
	return dims
}

// CalculateTopOpportunity picks the dimension with the lowest percentage.
// Only a percentage strictly below 100 can displace the presence default.
func CalculateTopOpportunity(scores map[domain.Dimension]domain.DimensionScore) domain.TopOpportunity {
	lowest := domain.DimensionPresence
	lowestPct := 100
	for _, d := range domain.AllDimensions {
		if p := scores[d].Percentage; p < lowestPct {
			lowestPct = p
			lowest = d
		}
	}

	cfg := dimensionConfigs[lowest]
	return domain.TopOpportunity{
		Dimension:       lowest,
		DimensionLabel:  cfg.label,
		CurrentPercent:  lowestPct,
		SuggestedAction: cfg.action,
		ExpectedImpact:  cfg.impact,
	}
}

// QuizStrengths lists up to three dimensions at 60% or more.
func QuizStrengths(scores map[domain.Dimension]domain.DimensionScore) []string {
	var out []string
	for _, d := range sortedDimensions(scores, true) {
		if scores[d].Percentage >= 60 && len(out) < 3 {
			out = append(out, dimensionConfigs[d].strength)
		}
	}
	if len(out) == 0 {
		out = append(out, "Voce esta buscando melhorar - isso ja e um grande passo!")
	}
	return out
}

// QuizGrowthAreas lists up to three dimensions below 70%.
func QuizGrowthAreas(scores map[domain.Dimension]domain.DimensionScore) []string {
	out := make([]string, 0, 3)
	for _, d := range sortedDimensions(scores, false) {
		if scores[d].Percentage < 70 && len(out) < 3 {
			out = append(out, dimensionConfigs[d].growth)
		}
	}
	return out
}

var weeklyGoalsByProfile = map[domain.QuizProfile][]string{
	domain.ProfileAlert: {
		"Comece com 1 refeicao em familia esta semana (sem telas)",
		"Reserve 15 minutos por dia para conversa individual com cada filho",
		`Estabeleca um horario fixo para "tempo de familia" no fim de semana`,
	},
	domain.ProfileBuilding: {
		"Adicione mais uma refeicao em familia a sua rotina semanal",
		`Crie um ritual de "check-in" diario (pergunte sobre o melhor momento do dia)`,
		"Planeje uma atividade especial em familia para o proximo fim de semana",
	},
	domain.ProfileEngaged: {
		"Experimente uma nova atividade em familia esta semana",
		"Aumente a duracao das refeicoes em familia para 30+ minutos",
		"Envolva os filhos na escolha das atividades familiares",
	},
	domain.ProfileConnected: {
		"Documente momentos especiais em um album ou diario familiar",
		"Compartilhe suas praticas com outras familias que admiram voces",
		"Crie uma tradicao familiar unica para sua familia",
	},
}

// QuizWeeklyGoals returns three goals for the profile, led by the top
// opportunity's action when that dimension is below 50%.
func QuizWeeklyGoals(profile domain.QuizProfile, top domain.TopOpportunity) []string {
	goals := append([]string(nil), weeklyGoalsByProfile[profile]...)
	if top.CurrentPercent < 50 {
		goals = append([]string{top.SuggestedAction}, goals...)
	}
	return limitStrings(goals, 3)
}

func quizInsights(total int, scores map[domain.Dimension]domain.DimensionScore, profile domain.QuizProfile) []string {
	pct := numfmt.RoundInt(float64(total) / domain.QuizMaxScore * 100)
	strongest := scores[sortedDimensions(scores, true)[0]]
	weakest := scores[sortedDimensions(scores, false)[0]]

	out := []string{
		fmt.Sprintf("Sua pontuacao geral de conexao familiar e %d%% (%d de 45 pontos)", pct, total),
		fmt.Sprintf("Seu ponto mais forte e %s (%d%%)", strongest.Label, strongest.Percentage),
	}
	if weakest.Percentage < 60 {
		out = append(out, fmt.Sprintf("Area com maior oportunidade de crescimento: %s (%d%%)", weakest.Label, weakest.Percentage))
	}

	switch profile {
	case domain.ProfileConnected:
		out = append(out, "Voce esta entre os pais mais engajados! Continue assim.")
	case domain.ProfileAlert:
		out = append(out, "Pequenas mudancas consistentes podem transformar sua dinamica familiar em semanas.")
	}
	return out
}

var quizRecommendationsByProfile = map[domain.QuizProfile][]string{
	domain.ProfileAlert: {
		"Comece com micro-momentos: 5 minutos de atencao total vale mais que 1 hora distraida",
		"Escolha UMA refeicao por semana para ser sagrada - sem excepcoes",
		`Configure seu celular para modo "nao perturbe" durante o tempo em familia`,
	},
	domain.ProfileBuilding: {
		"Transforme tarefas rotineiras em momentos de conexao (cozinhar juntos, arrumar a casa)",
		`Crie um "jar de atividades" com ideias escritas pelos filhos para fins de semana`,
		"Estabeleca uma pergunta diaria diferente para o jantar",
	},
	domain.ProfileEngaged: {
		"Envolva os filhos no planejamento das atividades familiares",
		"Crie tradicoes mensais que todos aguardem ansiosamente",
		`Considere um "dia especial" individual com cada filho mensalmente`,
	},
	domain.ProfileConnected: {
		"Documente e celebre os rituais que funcionam para sua familia",
		"Mentore outras familias compartilhando o que funciona para voces",
		"Continue evoluindo os rituais conforme os filhos crescem",
	},
}

func quizRecommendations(profile domain.QuizProfile, scores map[domain.Dimension]domain.DimensionScore) []string {
	out := append([]string(nil), quizRecommendationsByProfile[profile]...)
	weakest := sortedDimensions(scores, false)[0]
	if scores[weakest].Percentage < 50 {
		out = append([]string{dimensionConfigs[weakest].recommendation}, out...)
	}
	return limitStrings(out, 4)
}

var quizSources = []string{
	"Baumrind, D. (1991). Parenting Styles and Adolescent Development.",
	"Pew Research Center (2021). Parenting Children in the Age of Screens.",
	"Haidt, J. (2024). The Anxious Generation.",
	"Gottman Institute (2020). The Magic of Everyday Moments.",
}

// CalculateQuiz scores the 15 answers. The profile uses the raw total; the
// weighted total is informational.
func CalculateQuiz(in domain.QuizInput) (domain.QuizResult, error) {
	if err := in.Validate(); err != nil {
		return domain.QuizResult{}, err
	}

	scores := CalculateDimensionScores(in.Answers)
	total := 0
	weighted := 0.0
	for _, d := range domain.AllDimensions {
		total += scores[d].Score
		weighted += float64(scores[d].Score) * dimensionConfigs[d].weight
	}

	profile := QuizProfileFor(total)
	top := CalculateTopOpportunity(scores)
	pct := numfmt.RoundInt(float64(total) / domain.QuizMaxScore * 100)

	return domain.QuizResult{
		Score:           pct,
		Category:        profile.Type.Category(),
		Profile:         profile,
		TotalScore:      total,
		WeightedScore:   numfmt.Round1(weighted),
		MaxScore:        domain.QuizMaxScore,
		Percentage:      pct,
		DimensionScores: scores,
		Strengths:       QuizStrengths(scores),
		GrowthAreas:     QuizGrowthAreas(scores),
		TopOpportunity:  top,
		WeeklyGoals:     QuizWeeklyGoals(profile.Type, top),
		Insights:        quizInsights(total, scores, profile.Type),
		Recommendations: quizRecommendations(profile.Type, scores),
		Sources:         append([]string(nil), quizSources...),
	}, nil
}
