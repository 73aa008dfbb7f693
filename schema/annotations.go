package schema

// Title, Description, Default, Examples, and Comment are Draft-07's
// annotation keywords: metadata about the schema itself, never evaluated
// against an instance. They are carried here purely for completeness —
// round-tripping a schema document losslessly — and always resolve True.

type Title struct{ Text string }

func (Title) Name() string            { return "title" }
func (Title) NewEvaluator() Evaluator { return AlwaysTrue }

type Description struct{ Text string }

func (Description) Name() string            { return "description" }
func (Description) NewEvaluator() Evaluator { return AlwaysTrue }

type Default struct{ Value Value }

func (Default) Name() string            { return "default" }
func (Default) NewEvaluator() Evaluator { return AlwaysTrue }

type Examples struct{ Values []Value }

func (Examples) Name() string            { return "examples" }
func (Examples) NewEvaluator() Evaluator { return AlwaysTrue }

type Comment struct{ Text string }

func (Comment) Name() string            { return "$comment" }
func (Comment) NewEvaluator() Evaluator { return AlwaysTrue }
