package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/famcalc/internal/domain"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template is a named collection of transforms for one calculator.
type Template struct {
	Name        string
	Calculator  domain.CalculatorName
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted.
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForCalculator returns the templates of one calculator sorted by name.
func (tr *TemplateRegistry) ForCalculator(name domain.CalculatorName) []Template {
	var out []Template
	for _, t := range tr.templates {
		if t.Calculator == name {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func ptr[T any](v T) *T { return &v }

// CreateBuiltInTemplates creates a registry with the common habit changes
// of every calculator.
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Family time
	registry.Register(Template{
		Name:        "mais_30min_dia",
		Calculator:  domain.CalculatorFamilyTime,
		Description: "Mais 30 minutos juntos em cada dia útil",
		Transforms:  []InputTransform{&AddFamilyTime{WeekdayMinutes: 30}},
	})
	registry.Register(Template{
		Name:        "fim_de_semana_em_familia",
		Calculator:  domain.CalculatorFamilyTime,
		Description: "Mais 2 horas juntos em cada dia de fim de semana",
		Transforms:  []InputTransform{&AddFamilyTime{WeekendMinutes: 120}},
	})
	registry.Register(Template{
		Name:        "tempo_de_qualidade",
		Calculator:  domain.CalculatorFamilyTime,
		Description: "Tempo com atenção total (qualidade 1.5x)",
		Transforms:  []InputTransform{&SetQualityMultiplier{Multiplier: 1.5}},
	})
	registry.Register(Template{
		Name:        "rotina_completa",
		Calculator:  domain.CalculatorFamilyTime,
		Description: "Mais 30 min nos dias úteis com atenção total",
		Transforms: []InputTransform{
			&AddFamilyTime{WeekdayMinutes: 30},
			&SetQualityMultiplier{Multiplier: 1.5},
		},
	})

	// Screen time
	registry.Register(Template{
		Name:        "menos_1h_tela",
		Calculator:  domain.CalculatorScreenTime,
		Description: "Uma hora a menos de tela por dia",
		Transforms:  []InputTransform{&AdjustScreenTime{Minutes: -60}},
	})
	registry.Register(Template{
		Name:        "sem_tela_antes_de_dormir",
		Calculator:  domain.CalculatorScreenTime,
		Description: "Nenhuma tela na hora antes de dormir",
		Transforms:  []InputTransform{&SetScreenHabits{BeforeBedMinutes: ptr(0.0)}},
	})
	registry.Register(Template{
		Name:        "assistir_juntos",
		Calculator:  domain.CalculatorScreenTime,
		Description: "Metade do tempo de tela assistido com os pais",
		Transforms:  []InputTransform{&SetScreenHabits{CoViewingPercent: ptr(50.0)}},
	})
	registry.Register(Template{
		Name:        "tela_consciente",
		Calculator:  domain.CalculatorScreenTime,
		Description: "Menos 1h de tela, 60% educativo e nada antes de dormir",
		Transforms: []InputTransform{
			&AdjustScreenTime{Minutes: -60},
			&SetScreenHabits{EducationalPercent: ptr(60.0), BeforeBedMinutes: ptr(0.0)},
		},
	})

	// Social return
	registry.Register(Template{
		Name:        "mais_2h_semana",
		Calculator:  domain.CalculatorSocialROI,
		Description: "Mais 2 horas semanais de tempo de qualidade",
		Transforms:  []InputTransform{&AddWeeklyHours{Hours: 2}},
	})
	registry.Register(Template{
		Name:        "mais_5h_semana",
		Calculator:  domain.CalculatorSocialROI,
		Description: "Mais 5 horas semanais de tempo de qualidade",
		Transforms:  []InputTransform{&AddWeeklyHours{Hours: 5}},
	})

	// Meals
	registry.Register(Template{
		Name:        "jantar_diario",
		Calculator:  domain.CalculatorMeals,
		Description: "Jantar em família todos os dias",
		Transforms:  []InputTransform{&AddMeals{Dinner: 7}},
	})
	registry.Register(Template{
		Name:        "mesa_sem_telas",
		Calculator:  domain.CalculatorMeals,
		Description: "Nenhuma tela durante as refeições",
		Transforms:  []InputTransform{&SetMealHabits{Screens: ptr(domain.ScreensNever)}},
	})
	registry.Register(Template{
		Name:        "refeicoes_sem_pressa",
		Calculator:  domain.CalculatorMeals,
		Description: "Refeições de mais de 30 minutos sem telas",
		Transforms: []InputTransform{
			&SetMealHabits{Duration: ptr(domain.DurationMore30), Screens: ptr(domain.ScreensNever)},
		},
	})

	// Moments
	registry.Register(Template{
		Name:        "meta_ambiciosa",
		Calculator:  domain.CalculatorMoments,
		Description: "Meta de 30 momentos por semana",
		Transforms:  []InputTransform{&SetMomentsTarget{Target: 30}},
	})

	// Quiz
	for _, d := range domain.AllDimensions {
		registry.Register(Template{
			Name:        "foco_" + string(d),
			Calculator:  domain.CalculatorParentQuiz,
			Description: (&RaiseQuizDimension{Dimension: d, Points: 1}).Description(),
			Transforms:  []InputTransform{&RaiseQuizDimension{Dimension: d, Points: 1}},
		})
	}

	return registry
}

// ApplyTemplate applies a template to a base input of the same calculator.
func ApplyTemplate(base domain.Input, template Template) (domain.Input, error) {
	name, ok := CalculatorOf(base)
	if !ok {
		return nil, fmt.Errorf("unsupported input type %T", base)
	}
	if name != template.Calculator {
		return nil, fmt.Errorf("template %s applies to %s, not %s", template.Name, template.Calculator, name)
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp lists templates grouped by calculator. An empty
// calculator lists them all.
func GetTemplateHelp(registry *TemplateRegistry, calculator domain.CalculatorName) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Modelos disponíveis:\n\n")

	for _, name := range domain.AllCalculators {
		if calculator != "" && name != calculator {
			continue
		}
		templates := registry.ForCalculator(name)
		if len(templates) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s (%s):\n", name.Title(), name))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-28s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Uso:\n")
	sb.WriteString("  famcalc compare cenarios.yaml --with mesa_sem_telas,jantar_diario\n")
	sb.WriteString("  famcalc compare cenarios.yaml --transform add_meals:dinner=2\n")

	return sb.String()
}
