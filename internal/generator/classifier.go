// Package generator implements the LookML generation engine: column
// classification, type mapping, dimension and measure synthesis, view
// assembly, relationship resolution, and explore assembly.
//
// The engine is a pure transformation from (table metadata, rules) to a
// core.Project plus a diagnostics accumulator. It performs no I/O.
package generator

import (
	"strings"

	"github.com/concordia-labs/concordia/internal/config"
	"github.com/concordia-labs/concordia/pkg/core"
)

// MatchKind is how a classification rule matches a column name.
type MatchKind string

// Supported match kinds.
const (
	MatchExact  MatchKind = "exact"
	MatchSuffix MatchKind = "suffix"
	MatchPrefix MatchKind = "prefix"
)

// Rule is one entry in the ordered classification table.
type Rule struct {
	Role    core.Role
	Kind    MatchKind
	Pattern string
}

// Matches reports whether the rule matches the (lower-cased) name.
func (r Rule) Matches(name string) bool {
	switch r.Kind {
	case MatchExact:
		return name == r.Pattern
	case MatchSuffix:
		return strings.HasSuffix(name, r.Pattern)
	case MatchPrefix:
		return strings.HasPrefix(name, r.Pattern)
	}
	return false
}

// Classifier assigns a semantic role to a column name. Rules are
// evaluated in order and the first match wins, which encodes the
// precedence primary_key > foreign_key > timestamp > boolean_flag.
// Classification is a pure function of (name, rules).
type Classifier struct {
	rules []Rule
}

// NewClassifier builds the ordered rule table from naming conventions.
// Within a role, declaration order in the configuration is preserved.
func NewClassifier(naming config.NamingRules) *Classifier {
	var rules []Rule

	// A bare "id" column is always a primary key.
	rules = append(rules, Rule{Role: core.RolePrimaryKey, Kind: MatchExact, Pattern: "id"})
	for _, s := range naming.PrimaryKeySuffixes {
		rules = append(rules, Rule{Role: core.RolePrimaryKey, Kind: MatchSuffix, Pattern: strings.ToLower(s)})
	}
	for _, s := range naming.ForeignKeySuffixes {
		rules = append(rules, Rule{Role: core.RoleForeignKey, Kind: MatchSuffix, Pattern: strings.ToLower(s)})
	}
	for _, s := range naming.TimestampSuffixes {
		rules = append(rules, Rule{Role: core.RoleTimestamp, Kind: MatchSuffix, Pattern: strings.ToLower(s)})
	}
	for _, p := range naming.BooleanPrefixes {
		rules = append(rules, Rule{Role: core.RoleBooleanFlag, Kind: MatchPrefix, Pattern: strings.ToLower(p)})
	}

	return &Classifier{rules: rules}
}

// Classify returns exactly one role for the column name.
// Unmatched names classify as plain.
func (c *Classifier) Classify(name string) core.Role {
	lower := strings.ToLower(name)
	for _, r := range c.rules {
		if r.Matches(lower) {
			return r.Role
		}
	}
	return core.RolePlain
}

// ForeignKeyStem strips the first matching foreign-key suffix and
// returns the remaining stem. ok is false when the name carries no
// foreign-key suffix or nothing remains after stripping.
func (c *Classifier) ForeignKeyStem(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, r := range c.rules {
		if r.Role != core.RoleForeignKey || r.Kind != MatchSuffix {
			continue
		}
		if strings.HasSuffix(lower, r.Pattern) {
			stem := strings.TrimSuffix(lower, r.Pattern)
			if stem == "" {
				return "", false
			}
			return stem, true
		}
	}
	return "", false
}

// TimeGroupName strips the first matching timestamp suffix so
// created_at becomes the dimension group created. Names that consist
// only of the suffix are returned unchanged.
func (c *Classifier) TimeGroupName(name string) string {
	lower := strings.ToLower(name)
	for _, r := range c.rules {
		if r.Role != core.RoleTimestamp || r.Kind != MatchSuffix {
			continue
		}
		if strings.HasSuffix(lower, r.Pattern) {
			stem := strings.TrimSuffix(lower, r.Pattern)
			if stem != "" {
				return stem
			}
			return lower
		}
	}
	return lower
}
