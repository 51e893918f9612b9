package eval

import (
	"os"

	"github.com/expr-lang/expr"

	"github.com/signadot/seedgen/token"
)

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(Env{}),
		expr.AsBool(),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
		expr.Function("isIdent", func(params ...any) (any, error) {
			return token.IsIdent(params[0].(string)), nil
		},
			new(func(string) bool)),
	}
}
