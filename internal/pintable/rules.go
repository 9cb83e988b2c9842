package pintable

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed rules.toml
var embeddedRules []byte

// MatchKind selects how a rule's patterns are compared against an
// upper-cased pin name.
type MatchKind string

const (
	MatchExact  MatchKind = "exact"
	MatchPrefix MatchKind = "prefix"
	MatchSuffix MatchKind = "suffix"
)

// Rule maps a set of name patterns to an electrical type. Rules are
// evaluated in declaration order; the first match wins, which keeps
// inference deterministic regardless of input.
type Rule struct {
	Type     ElectricalType `toml:"type"`
	Match    MatchKind      `toml:"match"`
	Patterns []string       `toml:"patterns"`
}

// Rules is the full inference policy: explicit hint-text mappings plus
// ordered name rules. Datasheet naming conventions vary by vendor, so
// the table is configuration data, not code.
type Rules struct {
	Hints map[string]ElectricalType `toml:"hints"`
	Rules []Rule                    `toml:"rules"`
}

// DefaultRules parses the embedded rule table. The embedded table is
// validated by tests, so a parse failure here is a build defect.
func DefaultRules() *Rules {
	r, err := parseRules(embeddedRules, "embedded rules")
	if err != nil {
		panic(err)
	}
	return r
}

// LoadRules reads a TOML rule file, replacing the built-in policy.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	return parseRules(data, path)
}

func parseRules(data []byte, source string) (*Rules, error) {
	var r Rules
	if err := toml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	for i, rule := range r.Rules {
		switch rule.Match {
		case MatchExact, MatchPrefix, MatchSuffix:
		default:
			return nil, fmt.Errorf("%s: rule %d: unknown match kind %q", source, i, rule.Match)
		}
	}
	return &r, nil
}

// FromHint maps explicit type-hint text (the "I/O" column of a
// datasheet table) to an electrical type. Returns TypeUnknown when the
// hint is absent from the table.
func (r *Rules) FromHint(hint string) ElectricalType {
	t, ok := r.Hints[strings.ToLower(strings.TrimSpace(hint))]
	if !ok {
		return TypeUnknown
	}
	return t
}

// Infer guesses the electrical type from the pin name. Returns
// TypeUnknown when no rule matches; callers flag such pins rather than
// dropping them.
func (r *Rules) Infer(name string) ElectricalType {
	n := strings.ToUpper(strings.TrimSpace(name))
	for _, rule := range r.Rules {
		for _, pat := range rule.Patterns {
			var hit bool
			switch rule.Match {
			case MatchExact:
				hit = n == pat
			case MatchPrefix:
				hit = n == pat || strings.HasPrefix(n, pat+"_") || strings.HasPrefix(n, pat)
			case MatchSuffix:
				hit = strings.HasSuffix(n, pat)
			}
			if hit {
				return rule.Type
			}
		}
	}
	return TypeUnknown
}

// Resolve applies the full policy for one row: explicit hint first,
// name inference as fallback.
func (r *Rules) Resolve(name, hint string) ElectricalType {
	if hint != "" {
		if t := r.FromHint(hint); t != TypeUnknown {
			return t
		}
	}
	return r.Infer(name)
}
