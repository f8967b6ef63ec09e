package cronx

import (
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
)

// Schedule represents a parsed cron schedule with field information.
type Schedule struct {
	Original   string // The original cron expression string
	Minute     Field  // Minute field (MinMinute-MaxMinute)
	Hour       Field  // Hour field (MinHour-MaxHour)
	DayOfMonth Field  // Day of month field (MinDayOfMonth-MaxDayOfMonth)
	Month      Field  // Month field (MinMonth-MaxMonth)
	DayOfWeek  Field  // Day of week field (MinDayOfWeek-MaxDayOfWeek, Sunday=0, 7 also accepted)
}

// fieldNames names each of the five fields in order, for ParseError.
var fieldNames = [5]string{"minute", "hour", "day-of-month", "month", "day-of-week"}

// Parser is the abstraction layer for cron expression parsing.
type Parser interface {
	Parse(expression string) (*Schedule, error)
}

// parser implements Parser interface
type parser struct {
	aliasParser cron.Parser
	symbols     SymbolRegistry
	cache       map[string]*Schedule
	cacheMu     sync.RWMutex
}

// NewParser creates a new cron expression parser with English locale (default)
func NewParser() Parser {
	return NewParserWithLocale("en")
}

// NewParserWithLocale creates a new cron expression parser with a specific locale
func NewParserWithLocale(locale string) Parser {
	symbols, _ := GetSymbolRegistry(locale)
	return &parser{
		// BOUNDARY: the only place this package calls an external library.
		// Used exclusively to recognize and expand "@daily"-style
		// descriptors into five fields; field bounds and set membership
		// are validated and expanded by this package's own parseField,
		// since NextAfter needs the explicit permitted-integer sets and
		// callers need a ParseError naming the offending field and token.
		aliasParser: cron.NewParser(cron.Descriptor),
		symbols:     symbols,
		cache:       make(map[string]*Schedule),
	}
}

// Parse parses a cron expression (5-field format or @alias). Results are
// cached, since a reminder's schedule is parsed once at load and then
// re-validated by every CLI diagnostic that inspects the catalogue.
func (p *parser) Parse(expression string) (*Schedule, error) {
	if expression == "" {
		return nil, &ParseError{FieldIndex: -1, Reason: "empty expression", Token: expression}
	}

	p.cacheMu.RLock()
	if cached, ok := p.cache[expression]; ok {
		p.cacheMu.RUnlock()
		return cached, nil
	}
	p.cacheMu.RUnlock()

	var fields []string
	if strings.HasPrefix(expression, "@") {
		if _, err := p.aliasParser.Parse(expression); err != nil {
			return nil, &ParseError{FieldIndex: -1, Token: expression, Reason: "unrecognized descriptor"}
		}
		fields = aliasToFields(expression)
	} else {
		fields = strings.Fields(strings.ToUpper(expression))
		if len(fields) != 5 {
			return nil, &ParseError{FieldIndex: -1, Token: expression, Reason: "expected 5 fields (minute hour day-of-month month day-of-week)"}
		}
	}

	bounds := [5][2]int{
		{MinMinute, MaxMinute},
		{MinHour, MaxHour},
		{MinDayOfMonth, MaxDayOfMonth},
		{MinMonth, MaxMonth},
		{MinDayOfWeek, MaxDayOfWeek},
	}

	parsed := make([]Field, 5)
	for i, raw := range fields {
		normalizeSeven := i == 4 // day-of-week: 7 normalizes to 0
		f, err := parseField(fieldNames[i], raw, bounds[i][0], bounds[i][1], p.symbols, normalizeSeven)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.FieldIndex = i
			}
			return nil, err
		}
		parsed[i] = f
	}

	schedule := &Schedule{
		Original:   expression,
		Minute:     parsed[0],
		Hour:       parsed[1],
		DayOfMonth: parsed[2],
		Month:      parsed[3],
		DayOfWeek:  parsed[4],
	}

	p.cacheMu.Lock()
	p.cache[expression] = schedule
	p.cacheMu.Unlock()

	return schedule, nil
}

// aliasToFields converts cron descriptors to their five-field equivalent.
func aliasToFields(alias string) []string {
	switch strings.ToLower(alias) {
	case "@yearly", "@annually":
		return []string{"0", "0", "1", "1", "*"}
	case "@monthly":
		return []string{"0", "0", "1", "*", "*"}
	case "@weekly":
		return []string{"0", "0", "*", "*", "0"}
	case "@daily", "@midnight":
		return []string{"0", "0", "*", "*", "*"}
	case "@hourly":
		return []string{"0", "*", "*", "*", "*"}
	default:
		return []string{"*", "*", "*", "*", "*"}
	}
}
