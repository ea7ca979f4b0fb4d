package functions

import (
	"context"
	"fmt"
	"slices"

	"github.com/abdusco/shelf/internal"
	"github.com/abdusco/shelf/internal/schema"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type Kind string

const (
	Query    Kind = "query"
	Mutation Kind = "mutation"
)

type HandlerFunc func(ctx context.Context, args map[string]any) (any, error)

// Function is a named query or mutation with validated arguments.
type Function struct {
	Path    string
	Kind    Kind
	Args    schema.Object
	Handler HandlerFunc
}

type Registry struct {
	functions map[string]Function
}

func NewRegistry() *Registry {
	return &Registry{functions: make(map[string]Function)}
}

func (r *Registry) Register(fns ...Function) {
	for _, fn := range fns {
		if _, exists := r.functions[fn.Path]; exists {
			panic(fmt.Sprintf("function %q registered twice", fn.Path))
		}
		r.functions[fn.Path] = fn
	}
}

func (r *Registry) Paths() []string {
	paths := lo.Keys(r.functions)
	slices.Sort(paths)
	return paths
}

// Call validates args against the function's declaration and runs it. A
// function is only reachable through its own kind.
func (r *Registry) Call(ctx context.Context, kind Kind, path string, args map[string]any) (any, error) {
	fn, ok := r.functions[path]
	if !ok || fn.Kind != kind {
		return nil, fmt.Errorf("%w: %s %q", internal.ErrFunctionNotFound, kind, path)
	}

	if args == nil {
		args = map[string]any{}
	}
	if err := fn.Args.Validate(args); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("rejected function arguments")
		return nil, fmt.Errorf("invalid arguments for %s %q: %w", kind, path, err)
	}

	log.Debug().Str("kind", string(kind)).Str("path", path).Msg("running function")
	return fn.Handler(ctx, args)
}
