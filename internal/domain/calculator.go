package domain

// CalculatorName identifies one of the scoring calculators.
type CalculatorName string

const (
	CalculatorFamilyTime CalculatorName = "tempo-familiar"
	CalculatorScreenTime CalculatorName = "tempo-tela"
	CalculatorSocialROI  CalculatorName = "roi-social"
	CalculatorMeals      CalculatorName = "refeicoes"
	CalculatorMoments    CalculatorName = "momentos-conexao"
	CalculatorParentQuiz CalculatorName = "quiz-parentalidade"
)

// AllCalculators lists every calculator in presentation order.
var AllCalculators = []CalculatorName{
	CalculatorFamilyTime,
	CalculatorScreenTime,
	CalculatorSocialROI,
	CalculatorMeals,
	CalculatorMoments,
	CalculatorParentQuiz,
}

// Title returns the display title of the calculator.
func (c CalculatorName) Title() string {
	switch c {
	case CalculatorFamilyTime:
		return "Tempo Familiar"
	case CalculatorScreenTime:
		return "Tempo de Tela"
	case CalculatorSocialROI:
		return "ROI Social"
	case CalculatorMeals:
		return "Refeições em Família"
	case CalculatorMoments:
		return "Momentos de Conexão"
	case CalculatorParentQuiz:
		return "Quiz de Parentalidade"
	default:
		return string(c)
	}
}

// IsValid reports whether c names a known calculator.
func (c CalculatorName) IsValid() bool {
	for _, known := range AllCalculators {
		if c == known {
			return true
		}
	}
	return false
}

// Category is the ordinal bucket every calculator result falls into.
type Category string

const (
	CategoryLow       Category = "low"
	CategoryMedium    Category = "medium"
	CategoryHigh      Category = "high"
	CategoryExcellent Category = "excellent"
)

// Rank orders categories from low (0) to excellent (3). Unknown values rank -1.
func (c Category) Rank() int {
	switch c {
	case CategoryLow:
		return 0
	case CategoryMedium:
		return 1
	case CategoryHigh:
		return 2
	case CategoryExcellent:
		return 3
	default:
		return -1
	}
}

// Metric is a single labelled figure highlighted in a summary.
type Metric struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Summary is the calculator-neutral view of a result. Formatters and the
// compare engine only ever see this shape.
type Summary struct {
	Calculator      CalculatorName `json:"calculator"`
	Title           string         `json:"title"`
	Score           float64        `json:"score"`
	Category        Category       `json:"category"`
	CategoryLabel   string         `json:"categoryLabel"`
	Metrics         []Metric       `json:"metrics,omitempty"`
	Insights        []string       `json:"insights"`
	Recommendations []string       `json:"recommendations"`
	Suggestions     []string       `json:"suggestions,omitempty"`
	Sources         []string       `json:"sources,omitempty"`
}

// Result is implemented by every calculator result.
type Result interface {
	Summary() Summary
}

// Input is implemented by every calculator input.
type Input interface {
	Validate() error
}
