package tui

import "github.com/rgehrsitz/famcalc/internal/domain"

// Scene represents different screens in the TUI
type Scene int

const (
	SceneIntro Scene = iota
	SceneQuestion
	SceneResult
)

func (s Scene) String() string {
	switch s {
	case SceneIntro:
		return "Início"
	case SceneQuestion:
		return "Questionário"
	case SceneResult:
		return "Resultado"
	default:
		return "Desconhecida"
	}
}

// QuizCompleteMsg carries the scored quiz once every question is answered.
type QuizCompleteMsg struct {
	Result *domain.QuizResult
	Err    error
}
