package compiler

// BuilderError reports a structural problem with the schema document
// itself: a keyword with the wrong JSON type, an invalid regular
// expression, a schema that is neither an object nor a boolean.
type BuilderError struct {
	Path    string
	Message string
}

func (e *BuilderError) Error() string { return e.Path + ": " + e.Message }

// ReferenceError reports a $ref or $id that is malformed at the syntax
// level — an unparseable URI, or two subschemas declaring the same $id.
// A $ref that is syntactically fine but never resolves to anything is not
// a ReferenceError: it compiles successfully and surfaces as a
// "schema.dereference" validation problem the first time it is evaluated,
// mirroring the original implementation's NonexistentSchema sentinel (see
// DESIGN.md).
type ReferenceError struct {
	URI     string
	Message string
}

func (e *ReferenceError) Error() string { return e.URI + ": " + e.Message }
