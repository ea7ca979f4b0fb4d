package functions

import (
	"context"

	"github.com/abdusco/shelf/internal"
	"github.com/abdusco/shelf/internal/schema"
	"github.com/samber/lo"
)

type LinkStore interface {
	Create(ctx context.Context, link internal.NewLink) (string, error)
	ListAll(ctx context.Context) ([]internal.Link, error)
}

type ModelStore interface {
	Create(ctx context.Context, model internal.NewModel) (string, error)
	ListAll(ctx context.Context) ([]internal.Model, error)
}

var CreateLinkArgs = schema.Object{
	"url":     schema.String(),
	"title":   schema.String(),
	"tags":    schema.Array(schema.String()),
	"favicon": schema.Optional(schema.String()),
}

var CreateModelArgs = schema.Object{
	"name": schema.String(),
	"url":  schema.String(),
}

func LinkFunctions(store LinkStore) []Function {
	return []Function{
		{
			Path: "links:get",
			Kind: Query,
			Args: schema.Object{},
			Handler: func(ctx context.Context, _ map[string]any) (any, error) {
				return store.ListAll(ctx)
			},
		},
		{
			Path: "links:create",
			Kind: Mutation,
			Args: CreateLinkArgs,
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return store.Create(ctx, newLinkFromArgs(args))
			},
		},
	}
}

func ModelFunctions(store ModelStore) []Function {
	return []Function{
		{
			Path: "models:get",
			Kind: Query,
			Args: schema.Object{},
			Handler: func(ctx context.Context, _ map[string]any) (any, error) {
				return store.ListAll(ctx)
			},
		},
		{
			Path: "models:create",
			Kind: Mutation,
			Args: CreateModelArgs,
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return store.Create(ctx, internal.NewModel{
					Name: args["name"].(string),
					URL:  args["url"].(string),
				})
			},
		},
	}
}

// newLinkFromArgs expects args already validated against CreateLinkArgs.
// A missing or empty favicon is stored as "".
func newLinkFromArgs(args map[string]any) internal.NewLink {
	favicon, _ := args["favicon"].(string)

	var tags []string
	switch v := args["tags"].(type) {
	case []string:
		tags = v
	case []any:
		tags = lo.Map(v, func(tag any, _ int) string { return tag.(string) })
	}
	if tags == nil {
		tags = []string{}
	}

	return internal.NewLink{
		URL:     args["url"].(string),
		Title:   args["title"].(string),
		Tags:    tags,
		Favicon: favicon,
	}
}
