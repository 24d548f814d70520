package catalog

var stringList = map[string]any{
	"type":     "array",
	"items":    map[string]any{"type": "string", "minLength": 1},
	"minItems": 1,
}

var conditionalSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"requires":    stringList,
		"requiresNot": stringList,
		"response":    map[string]any{"type": "string"},
	},
	"required":             []any{"response"},
	"additionalProperties": false,
	"anyOf": []any{
		map[string]any{"required": []any{"requires"}},
		map[string]any{"required": []any{"requiresNot"}},
	},
}

var commandSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"value":                map[string]any{"type": "string", "minLength": 1},
		"label":                map[string]any{"type": "string"},
		"response":             map[string]any{"type": "string"},
		"interactive":          map[string]any{"type": "boolean"},
		"conditionalResponses": map[string]any{"type": "array", "items": conditionalSchema},
		"setsState": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "boolean"},
		},
		"completesStep":     map[string]any{"type": "boolean"},
		"completesExercise": map[string]any{"type": "boolean"},
	},
	"required":             []any{"value", "label", "response"},
	"additionalProperties": false,
}

// catalogSchema is the JSON Schema every catalog document must satisfy.
var catalogSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{"type": "string"},
		"modules": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":           map[string]any{"type": "string", "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"},
					"title":        map[string]any{"type": "string", "minLength": 1},
					"introduction": map[string]any{"type": "string"},
					"help":         map[string]any{"type": "string"},
					"commands": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    commandSchema,
					},
				},
				"required":             []any{"id", "title", "commands"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"version", "modules"},
	"additionalProperties": false,
}
