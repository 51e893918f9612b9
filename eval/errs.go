package eval

import "errors"

var (
	ErrCompile    = errors.New("prune rule does not compile")
	ErrEval       = errors.New("prune rule failed")
	ErrRuleExists = errors.New("rule exists")
)
