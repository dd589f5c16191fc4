package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case QuizCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.result = msg.Result
		m.scene = SceneResult
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keyboard shortcuts
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.loading {
		return m, nil
	}
	if m.err != nil {
		// Any key dismisses the error and returns to the last question.
		m.err = nil
		return m, nil
	}

	switch m.scene {
	case SceneIntro:
		if key.Matches(msg, keys.Select) {
			m.scene = SceneQuestion
		}
		return m, nil
	case SceneQuestion:
		return m.updateQuestion(msg)
	case SceneResult:
		return m.updateResult(msg)
	}
	return m, nil
}

func (m Model) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < 3 {
			m.cursor++
		}
	case key.Matches(msg, keys.Answer):
		return m.answer(int(msg.String()[0] - '0'))
	case key.Matches(msg, keys.Select):
		return m.answer(m.cursor)
	case key.Matches(msg, keys.Back):
		if m.current == 0 {
			m.scene = SceneIntro
			return m, nil
		}
		m.current--
		m.cursor = m.answers[m.questions[m.current].ID]
	}
	return m, nil
}

// answer records points for the current question and moves on. Answering
// the last question starts scoring.
func (m Model) answer(points int) (tea.Model, tea.Cmd) {
	m.answers[m.questions[m.current].ID] = points
	m.cursor = points

	if m.current == len(m.questions)-1 {
		m.loading = true
		return m, calculateQuizCmd(m.answers)
	}

	m.current++
	m.cursor = 0
	if prev, ok := m.answers[m.questions[m.current].ID]; ok {
		m.cursor = prev
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Restart):
		fresh := NewModel()
		fresh.width, fresh.height = m.width, m.height
		fresh.help.Width = m.help.Width
		fresh.scene = SceneQuestion
		return fresh, nil
	case key.Matches(msg, keys.Back):
		m.result = nil
		m.scene = SceneQuestion
		m.cursor = m.answers[m.questions[m.current].ID]
	}
	return m, nil
}
