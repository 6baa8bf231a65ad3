package rules

import "github.com/expr-lang/expr/vm"

// ActionFunc places units on the turn's board when a rule's condition is
// true.
type ActionFunc func(env RuleEnv) error

// Rule is the atomic unit of turn behavior: a condition → action pair.
// The engine evaluates rules by priority and uses Category + Exclusive
// to keep competing rules from both spending the same currency.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // grouping for exclusive semantics
	Exclusive    bool        // if true, blocks lower-priority rules in same category
	ConditionSrc string      // expr source
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}
