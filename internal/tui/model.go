package tui

import (
	"maps"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/famcalc/internal/calculation"
	"github.com/rgehrsitz/famcalc/internal/domain"
)

// Model represents the entire application state
type Model struct {
	scene Scene

	// Terminal dimensions
	width  int
	height int

	questions []domain.QuizQuestion
	current   int // index into questions
	cursor    int // highlighted answer, 0-3
	answers   map[string]int

	result  *domain.QuizResult
	err     error
	loading bool

	help help.Model
}

// NewModel creates a model positioned on the intro screen.
func NewModel() Model {
	return Model{
		scene:     SceneIntro,
		questions: calculation.QuizQuestions(),
		answers:   make(map[string]int, domain.QuizQuestionCount),
		help:      help.New(),
		width:     80,
		height:    24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return nil
}

// Scene returns the screen currently shown.
func (m Model) Scene() Scene { return m.scene }

// Current returns the 0-based index of the question on screen.
func (m Model) Current() int { return m.current }

// Cursor returns the highlighted answer.
func (m Model) Cursor() int { return m.cursor }

// Answers returns a copy of the answers given so far.
func (m Model) Answers() map[string]int { return maps.Clone(m.answers) }

// Result returns the scored quiz, or nil before the last answer.
func (m Model) Result() *domain.QuizResult { return m.result }

// Err returns the last scoring error.
func (m Model) Err() error { return m.err }

// calculateQuizCmd scores a snapshot of the answers.
func calculateQuizCmd(answers map[string]int) tea.Cmd {
	snapshot := maps.Clone(answers)
	return func() tea.Msg {
		result, err := calculation.CalculateQuiz(domain.QuizInput{Answers: snapshot})
		if err != nil {
			return QuizCompleteMsg{Err: err}
		}
		return QuizCompleteMsg{Result: &result}
	}
}
