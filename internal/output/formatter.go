package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/famcalc/internal/domain"
)

// Formatter renders a calculator summary.
type Formatter interface {
	Name() string
	Format(s domain.Summary) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(s domain.Summary) ([]byte, error)
}

func (f FormatterFunc) Name() string                            { return f.ID }
func (f FormatterFunc) Format(s domain.Summary) ([]byte, error) { return f.F(s) }

var formatters = map[string]Formatter{}

// Register adds f under its name, replacing any formatter with that name.
func Register(f Formatter) {
	formatters[strings.ToLower(f.Name())] = f
}

func init() {
	Register(ConsoleFormatter{})
	Register(JSONFormatter{Pretty: true})
	Register(CSVFormatter{})
	Register(MarkdownFormatter{})
	Register(HTMLFormatter{})
}

// GetFormatterByName returns the formatter registered as name, or nil.
// "text" and "md" are accepted as aliases.
func GetFormatterByName(name string) Formatter {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "", "text":
		return formatters["console"]
	case "md":
		return formatters["markdown"]
	default:
		return formatters[n]
	}
}

// FormatterNames lists the registered formatter names in order.
func FormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted writes the formatted summary to a timestamped file in the
// working directory and returns its name.
func WriteFormatted(f Formatter, s domain.Summary, ext string) (string, error) {
	data, err := f.Format(s)
	if err != nil {
		return "", fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	filename := fmt.Sprintf("famcalc_%s_%s.%s", s.Calculator, time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
