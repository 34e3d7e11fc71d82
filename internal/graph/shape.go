package graph

// FieldType names a JSON value type in a Shape.
type FieldType string

const (
	TypeInteger FieldType = "integer"
	TypeArray   FieldType = "array"
)

// Field is one entry of a Shape. Items is the element type when Type is
// TypeArray.
type Field struct {
	Name        string
	Type        FieldType
	Items       FieldType
	Required    bool
	Description string
}

// Shape is a fixed structural description of a JSON object answer. Providers
// render it into whatever schema dialect their API understands.
type Shape struct {
	Title       string
	Description string
	Fields      []Field
}

// ResponseShape describes SolveResponse.
var ResponseShape = Shape{
	Title:       "SolveResponse",
	Description: "Response model for the single-source shortest path problem.",
	Fields: []Field{
		{
			Name:        "distances",
			Type:        TypeArray,
			Items:       TypeInteger,
			Required:    true,
			Description: "A list of shortest distances from the source vertex to each vertex, in order of vertex numbering",
		},
	},
}

// FieldNames returns the field names in declaration order.
func (s Shape) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// RequiredNames returns the names of required fields in declaration order.
func (s Shape) RequiredNames() []string {
	names := []string{}
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// JSONSchema renders the shape as a JSON Schema object.
func (s Shape) JSONSchema() map[string]interface{} {
	props := make(map[string]interface{}, len(s.Fields))
	for _, f := range s.Fields {
		prop := map[string]interface{}{
			"type": string(f.Type),
		}
		if f.Description != "" {
			prop["description"] = f.Description
		}
		if f.Type == TypeArray && f.Items != "" {
			prop["items"] = map[string]interface{}{"type": string(f.Items)}
		}
		props[f.Name] = prop
	}
	schema := map[string]interface{}{
		"title":      s.Title,
		"type":       "object",
		"properties": props,
		"required":   s.RequiredNames(),
	}
	if s.Description != "" {
		schema["description"] = s.Description
	}
	return schema
}

// StrictJSONSchema is JSONSchema with additional properties disallowed, as
// strict structured-output modes require.
func (s Shape) StrictJSONSchema() map[string]interface{} {
	schema := s.JSONSchema()
	schema["additionalProperties"] = false
	return schema
}
