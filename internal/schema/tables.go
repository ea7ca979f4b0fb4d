package schema

import (
	"fmt"

	"github.com/abdusco/shelf/internal"
)

// Table is a named collection of documents sharing one shape.
type Table struct {
	Name   string
	Fields Object
}

var Links = Table{
	Name: "links",
	Fields: Object{
		"favicon": String(),
		"tags":    Array(String()),
		"title":   String(),
		"url":     String(),
	},
}

var Models = Table{
	Name: "models",
	Fields: Object{
		"name": String(),
		"url":  String(),
	},
}

func Tables() []Table {
	return []Table{Links, Models}
}

// ValidateDocument checks a document about to be written against the table.
func (t Table) ValidateDocument(doc map[string]any) error {
	if err := t.Fields.Validate(doc); err != nil {
		return fmt.Errorf("document does not match table %q: %w", t.Name, err)
	}
	return nil
}

func LinkDocument(link internal.NewLink) map[string]any {
	tags := link.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"favicon": link.Favicon,
		"tags":    tags,
		"title":   link.Title,
		"url":     link.URL,
	}
}

func ModelDocument(model internal.NewModel) map[string]any {
	return map[string]any{
		"name": model.Name,
		"url":  model.URL,
	}
}
