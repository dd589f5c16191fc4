package domain

import (
	"fmt"
	"strings"
	"time"
)

// MomentType is the kind of a connection moment.
type MomentType string

const (
	MomentConversation MomentType = "conversation"
	MomentPlay         MomentType = "play"
	MomentMeal         MomentType = "meal"
	MomentLearning     MomentType = "learning"
	MomentOutdoor      MomentType = "outdoor"
	MomentRoutine      MomentType = "routine"
)

// AllMomentTypes lists moment types in their fixed display order.
var AllMomentTypes = []MomentType{
	MomentConversation,
	MomentPlay,
	MomentMeal,
	MomentLearning,
	MomentOutdoor,
	MomentRoutine,
}

// IsValid reports whether t is a known moment type.
func (t MomentType) IsValid() bool {
	for _, known := range AllMomentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DefaultTargetMomentsPerWeek is the weekly goal when none is given.
const DefaultTargetMomentsPerWeek = 20

// MomentInput is one logged moment.
type MomentInput struct {
	Type     MomentType `yaml:"type" json:"type"`
	Duration float64    `yaml:"duration" json:"duration"`
	Date     string     `yaml:"date" json:"date"`
}

// Day returns the calendar day of the moment as YYYY-MM-DD.
func (m MomentInput) Day() string {
	if i := strings.IndexByte(m.Date, 'T'); i >= 0 {
		return m.Date[:i]
	}
	return m.Date
}

// ParseDay parses the calendar day of the moment in UTC.
func (m MomentInput) ParseDay() (time.Time, error) {
	return time.Parse(time.DateOnly, m.Day())
}

func (m MomentInput) validate(v *validator, prefix string) {
	if !m.Type.IsValid() {
		v.add(prefix+".type", fmt.Sprintf("Tipo de momento invalido: %q", m.Type))
	}
	v.rangeCheck(prefix+".duration", m.Duration, 1, 480,
		"Duracao minima e 1 minuto", "Duracao maxima e 8 horas")
	if _, err := m.ParseDay(); err != nil {
		v.add(prefix+".date", "Data invalida, use o formato AAAA-MM-DD")
	}
}

// Validate checks a single moment.
func (m MomentInput) Validate() error {
	var v validator
	m.validate(&v, "moment")
	return v.err()
}

// MomentsInput is the week of moments to score.
type MomentsInput struct {
	Moments              []MomentInput `yaml:"moments" json:"moments"`
	TargetMomentsPerWeek *int          `yaml:"target_moments_per_week,omitempty" json:"targetMomentsPerWeek,omitempty"`
}

// Target returns the weekly goal, falling back to the default.
func (in MomentsInput) Target() int {
	if in.TargetMomentsPerWeek == nil {
		return DefaultTargetMomentsPerWeek
	}
	return *in.TargetMomentsPerWeek
}

// Validate checks every moment and the weekly target.
func (in MomentsInput) Validate() error {
	var v validator
	for i, m := range in.Moments {
		m.validate(&v, fmt.Sprintf("moments[%d]", i))
	}
	if in.TargetMomentsPerWeek != nil {
		v.intRange("targetMomentsPerWeek", *in.TargetMomentsPerWeek, 1, 100,
			"A meta minima e 1", "A meta maxima e 100")
	}
	return v.err()
}

// MomentCategoryInfo describes how a moment type is scored.
type MomentCategoryInfo struct {
	Type        MomentType `json:"type"`
	Label       string     `json:"label"`
	MinDuration float64    `json:"minDuration"`
	Weight      float64    `json:"weight"`
	Examples    []string   `json:"examples"`
	Icon        string     `json:"icon"`
}

// ConnectionLevelID names a weekly connection level.
type ConnectionLevelID string

const (
	LevelBeginner   ConnectionLevelID = "iniciante"
	LevelInProgress ConnectionLevelID = "emProgresso"
	LevelEngaged    ConnectionLevelID = "engajado"
	LevelConnected  ConnectionLevelID = "conectado"
	LevelModel      ConnectionLevelID = "modelo"
)

// ConnectionLevel is a band of weekly moment counts. MaxMoments is zero for
// the open-ended top level.
type ConnectionLevel struct {
	Level       ConnectionLevelID `json:"level"`
	Label       string            `json:"label"`
	Description string            `json:"description"`
	MinMoments  int               `json:"minMoments"`
	MaxMoments  int               `json:"maxMoments,omitempty"`
}

// WeeklyScore is the weighted point total of a week.
type WeeklyScore struct {
	RawPoints    float64 `json:"rawPoints"`
	FinalScore   float64 `json:"finalScore"`
	Variety      int     `json:"variety"`
	MomentsCount int     `json:"momentsCount"`
	VarietyBonus bool    `json:"varietyBonus"`
}

// DayStatus summarizes one day of the current week.
type DayStatus struct {
	Date         string       `json:"date"`
	DayOfWeek    string       `json:"dayOfWeek"`
	MomentsCount int          `json:"momentsCount"`
	TotalMinutes float64      `json:"totalMinutes"`
	Categories   []MomentType `json:"categories"`
	Achieved     bool         `json:"achieved"`
}

// WeeklyView is the Sunday-first view of the current week.
type WeeklyView struct {
	Days          []DayStatus `json:"days"`
	TotalMoments  int         `json:"totalMoments"`
	TotalMinutes  float64     `json:"totalMinutes"`
	GoalMoments   int         `json:"goalMoments"`
	GoalAchieved  bool        `json:"goalAchieved"`
	CurrentStreak int         `json:"currentStreak"`
}

// CategoryBreakdown is the per-type share of the moments.
type CategoryBreakdown struct {
	Category       MomentType `json:"category"`
	Count          int        `json:"count"`
	TotalMinutes   float64    `json:"totalMinutes"`
	WeightedPoints float64    `json:"weightedPoints"`
	Percentage     int        `json:"percentage"`
}

// Achievement is a weekly goal and its progress. Progress is nil for goals
// without a counter.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Condition   string `json:"condition"`
	Points      int    `json:"points"`
	Unlocked    bool   `json:"unlocked"`
	Progress    *int   `json:"progress,omitempty"`
	MaxProgress *int   `json:"maxProgress,omitempty"`
}

// Achievements splits achievements by state.
type Achievements struct {
	Unlocked      []Achievement `json:"unlocked"`
	InProgress    []Achievement `json:"inProgress"`
	NextMilestone *Achievement  `json:"nextMilestone"`
}

// WeeklyPattern captures habits visible in the logged moments. Day names
// are "-" when nothing was logged.
type WeeklyPattern struct {
	MostFrequentCategory *MomentType `json:"mostFrequentCategory"`
	LeastUsedCategory    *MomentType `json:"leastUsedCategory"`
	BestDay              string      `json:"bestDay"`
	HardestDay           string      `json:"hardestDay"`
	AverageMomentsPerDay float64     `json:"averageMomentsPerDay"`
	AverageMinutesPerDay float64     `json:"averageMinutesPerDay"`
}

// YearlyImpact projects the weekly count over a year.
type YearlyImpact struct {
	TotalMoments       int     `json:"totalMoments"`
	TotalHours         int     `json:"totalHours"`
	EquivalentDays     float64 `json:"equivalentDays"`
	MemoryBankEstimate int     `json:"memoryBankEstimate"`
}

// LevelProgress is the distance to the next connection level.
type LevelProgress struct {
	Current    int              `json:"current"`
	Target     int              `json:"target"`
	Percentage int              `json:"percentage"`
	NextLevel  *ConnectionLevel `json:"nextLevel"`
}

// SuggestedMoment is a weekday idea for a moment.
type SuggestedMoment struct {
	Category   MomentType `json:"category"`
	Suggestion string     `json:"suggestion"`
}

// MomentsResult is the outcome of the connection moments calculator.
type MomentsResult struct {
	Score             float64             `json:"score"`
	Category          Category            `json:"category"`
	WeeklyView        WeeklyView          `json:"weeklyView"`
	WeeklyScore       WeeklyScore         `json:"weeklyScore"`
	ConnectionLevel   ConnectionLevel     `json:"connectionLevel"`
	LevelProgress     LevelProgress       `json:"levelProgress"`
	CategoryBreakdown []CategoryBreakdown `json:"categoryBreakdown"`
	Achievements      Achievements        `json:"achievements"`
	Patterns          WeeklyPattern       `json:"patterns"`
	YearlyImpact      YearlyImpact        `json:"yearlyImpact"`
	Suggestions       []string            `json:"suggestions"`
	Insights          []string            `json:"insights"`
	Recommendations   []string            `json:"recommendations"`
	Sources           []string            `json:"sources"`
}

// LoggedMoment is a persisted moment in a family's running log.
type LoggedMoment struct {
	ID        string     `json:"id" db:"id"`
	Type      MomentType `json:"type" db:"type"`
	Duration  float64    `json:"duration" db:"duration"`
	Date      string     `json:"date" db:"date"`
	Note      string     `json:"note,omitempty" db:"note"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}

// Input converts the logged moment to calculator input.
func (m LoggedMoment) Input() MomentInput {
	return MomentInput{Type: m.Type, Duration: m.Duration, Date: m.Date}
}

// BadgeKind is the rule a badge is earned by.
type BadgeKind string

const (
	BadgeMilestone BadgeKind = "milestone"
	BadgeStreak    BadgeKind = "streak"
	BadgeSpecial   BadgeKind = "special"

	// BadgeCalculators counts the distinct calculators a family has run.
	BadgeCalculators BadgeKind = "calculators"
	// BadgeTopScore counts calculator runs that reached the top category.
	BadgeTopScore    BadgeKind = "top_score"
)

// CalculatorRun records one calculation a family ran.
type CalculatorRun struct {
	Calculator CalculatorName `json:"calculator"`
	Score      float64        `json:"score"`
	Category   Category       `json:"category"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// RunOf records the outcome summarised by s.
func RunOf(s Summary) CalculatorRun {
	return CalculatorRun{Calculator: s.Calculator, Score: s.Score, Category: s.Category}
}

// Badge is a long-running award evaluated against the whole log.
type Badge struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Kind        BadgeKind  `json:"kind"`
	Threshold   int        `json:"threshold"`
	MomentType  MomentType `json:"momentType,omitempty"`
	Progress    int        `json:"progress"`
	Unlocked    bool       `json:"unlocked"`
}
