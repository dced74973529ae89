package service

import (
	"fmt"
	"regexp"
)

// Rule is a single pattern/replacement pair applied to every non-overlapping match.
// Replacement uses regexp template syntax (${1}).
type Rule struct {
	Name        string
	Pattern     string
	Replacement string
}

type compiledRule struct {
	Rule
	expr *regexp.Regexp
}

// RuleSet applies rules in order, each one on the output of the previous rule.
type RuleSet struct {
	rules []compiledRule
}

// DefaultRules returns the legacy-to-migrated call rewrites in their required order.
// Arguments are captured with [^)]+, so a capture ends at the first closing parenthesis.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "getPlayerDocAwait", Pattern: `await getDoc\(doc\(db, "players", ([^)]+)\)\)`, Replacement: `await getPlayerDoc(${1})`},
		{Name: "getPlayerDoc", Pattern: `getDoc\(doc\(db, "players", ([^)]+)\)\)`, Replacement: `getPlayerDoc(${1})`},
		{Name: "deletePlayerDoc", Pattern: `await deleteDoc\(doc\(db, "players", ([^)]+)\)\)`, Replacement: `await deletePlayerDoc(${1})`},
		{Name: "deleteSessionDoc", Pattern: `await deleteDoc\(doc\(db, "sessions", ([^)]+)\)\)`, Replacement: `await deleteSessionDoc(${1})`},
		{Name: "updatePlayerDoc", Pattern: `await updateDoc\(doc\(db, "players", ([^)]+)\), ([^)]+)\)`, Replacement: `await updatePlayerDoc(${1}, ${2})`},
		{Name: "signOut", Pattern: `signOut\(auth\)`, Replacement: `supabase.auth.signOut()`},
		{Name: "getUser", Pattern: `const user = await getCurrentUser\(\);`, Replacement: `const { data: { user } } = await supabase.auth.getUser();`},
	}
}

// NewRuleSet compiles rules, keeping their order.
func NewRuleSet(rules []Rule) (*RuleSet, error) {
	ret := &RuleSet{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		expr, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid rule %v: %w", r.Name, err)
		}
		ret.rules = append(ret.rules, compiledRule{Rule: r, expr: expr})
	}
	return ret, nil
}

// MustRuleSet is like NewRuleSet but panics on an invalid pattern.
func MustRuleSet(rules []Rule) *RuleSet {
	ret, err := NewRuleSet(rules)
	if err != nil {
		panic(err)
	}
	return ret
}

// Apply runs every rule over text and reports per-rule match counts.
// A rule that does not match leaves the text as is.
func (r *RuleSet) Apply(text string) (string, []RuleStat) {
	stats := make([]RuleStat, 0, len(r.rules))
	for _, rule := range r.rules {
		matches := len(rule.expr.FindAllStringIndex(text, -1))
		if matches > 0 {
			text = rule.expr.ReplaceAllString(text, rule.Replacement)
		}
		stats = append(stats, RuleStat{Name: rule.Name, Matches: matches})
	}
	return text, stats
}

// Len returns the number of rules.
func (r *RuleSet) Len() int { return len(r.rules) }
