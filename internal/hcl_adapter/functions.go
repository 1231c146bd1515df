package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// evalContext returns the context every attribute is evaluated in. Sizes use
// decimal units, matching the cost model's megabyte.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"kb":  unitFunc(1e3),
			"mb":  unitFunc(1e6),
			"gb":  unitFunc(1e9),
			"max": stdlib.MaxFunc,
			"min": stdlib.MinFunc,
		},
	}
}

// unitFunc builds a function multiplying its argument by factor.
func unitFunc(factor float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "n", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			return args[0].Multiply(cty.NumberFloatVal(factor)), nil
		},
	})
}
