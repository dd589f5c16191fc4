package domain

import (
	"fmt"
	"sort"
)

// QuizQuestionCount is the number of questions that must all be answered.
const QuizQuestionCount = 15

// QuizMaxScore is the highest raw total.
const QuizMaxScore = 45

// Dimension is one axis of the parenting quiz.
type Dimension string

const (
	DimensionPresence    Dimension = "presence"
	DimensionQuality     Dimension = "quality"
	DimensionConsistency Dimension = "consistency"
	DimensionDigital     Dimension = "digital"
)

// AllDimensions lists dimensions in declaration order, which also breaks ties.
var AllDimensions = []Dimension{
	DimensionPresence,
	DimensionQuality,
	DimensionConsistency,
	DimensionDigital,
}

// QuizProfile is the family profile derived from the raw total.
type QuizProfile string

const (
	ProfileAlert     QuizProfile = "alert"
	ProfileBuilding  QuizProfile = "building"
	ProfileEngaged   QuizProfile = "engaged"
	ProfileConnected QuizProfile = "connected"
)

// Category maps the profile onto the shared scale.
func (p QuizProfile) Category() Category {
	switch p {
	case ProfileBuilding:
		return CategoryMedium
	case ProfileEngaged:
		return CategoryHigh
	case ProfileConnected:
		return CategoryExcellent
	default:
		return CategoryLow
	}
}

// QuizQuestion is one statement of the questionnaire.
type QuizQuestion struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Dimension Dimension `json:"dimension"`
	Hint      string    `json:"hint,omitempty"`
}

// QuizInput maps question ids (q1..q15) to points on the 0-3 scale.
type QuizInput struct {
	Answers map[string]int `yaml:"answers" json:"answers"`
}

// QuestionID returns the id of the n-th question (1-based).
func QuestionID(n int) string {
	return fmt.Sprintf("q%d", n)
}

// Validate requires exactly the 15 known questions, each scored 0 to 3.
func (in QuizInput) Validate() error {
	var v validator
	known := make(map[string]bool, QuizQuestionCount)
	for i := 1; i <= QuizQuestionCount; i++ {
		id := QuestionID(i)
		known[id] = true
		value, ok := in.Answers[id]
		if !ok {
			v.add("answers."+id, "Todas as 15 perguntas devem ser respondidas")
			continue
		}
		v.intRange("answers."+id, value, 0, 3, "O valor minimo e 0", "O valor maximo e 3")
	}
	extra := make([]string, 0)
	for id := range in.Answers {
		if !known[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		v.add("answers."+id, "Pergunta desconhecida")
	}
	return v.err()
}

// DimensionScore is the subtotal of one dimension.
type DimensionScore struct {
	Score       int    `json:"score"`
	Max         int    `json:"max"`
	Percentage  int    `json:"percentage"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// QuizProfileResult describes the profile.
type QuizProfileResult struct {
	Type    QuizProfile `json:"type"`
	Label   string      `json:"label"`
	Message string      `json:"message"`
}

// TopOpportunity is the weakest dimension and what to do about it.
type TopOpportunity struct {
	Dimension       Dimension `json:"dimension"`
	DimensionLabel  string    `json:"dimensionLabel"`
	CurrentPercent  int       `json:"currentPercent"`
	SuggestedAction string    `json:"suggestedAction"`
	ExpectedImpact  string    `json:"expectedImpact"`
}

// QuizResult is the outcome of the parenting quiz.
type QuizResult struct {
	Score           int                          `json:"score"`
	Category        Category                     `json:"category"`
	Profile         QuizProfileResult            `json:"profile"`
	TotalScore      int                          `json:"totalScore"`
	WeightedScore   float64                      `json:"weightedScore"`
	MaxScore        int                          `json:"maxScore"`
	Percentage      int                          `json:"percentage"`
	DimensionScores map[Dimension]DimensionScore `json:"dimensionScores"`
	Strengths       []string                     `json:"strengths"`
	GrowthAreas     []string                     `json:"growthAreas"`
	TopOpportunity  TopOpportunity               `json:"topOpportunity"`
	WeeklyGoals     []string                     `json:"weeklyGoals"`
	Insights        []string                     `json:"insights"`
	Recommendations []string                     `json:"recommendations"`
	Sources         []string                     `json:"sources"`
}
