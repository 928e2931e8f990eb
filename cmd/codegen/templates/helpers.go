package templates

// Kind is a value type that gets a named alias, e.g. Integer for int.
type Kind struct {
	Name string
	Type string
}

// Kinds are the named kinds, in output order.
var Kinds = []Kind{
	{Name: "Boolean", Type: "bool"},
	{Name: "Integer", Type: "int"},
	{Name: "Long", Type: "int64"},
	{Name: "Float", Type: "float32"},
	{Name: "Double", Type: "float64"},
	{Name: "String", Type: "string"},
}
