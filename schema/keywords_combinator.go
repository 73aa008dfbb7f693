package schema

// AllOf implements the "allOf" keyword: every listed schema must validate.
type AllOf struct{ Schemas []*Schema }

func (AllOf) Name() string { return "allOf" }

func (k AllOf) NewEvaluator() Evaluator {
	evs := make([]Evaluator, len(k.Schemas))
	for i, s := range k.Schemas {
		evs[i] = s.NewEvaluator()
	}
	return newConjunctive(evs)
}

// AnyOf implements the "anyOf" keyword.
type AnyOf struct{ Schemas []*Schema }

func (AnyOf) Name() string { return "anyOf" }

func (k AnyOf) NewEvaluator() Evaluator {
	evs := make([]Evaluator, len(k.Schemas))
	for i, s := range k.Schemas {
		evs[i] = s.NewEvaluator()
	}
	return newDisjunctive(evs)
}

// OneOf implements the "oneOf" keyword.
type OneOf struct{ Schemas []*Schema }

func (OneOf) Name() string { return "oneOf" }

func (k OneOf) NewEvaluator() Evaluator {
	evs := make([]Evaluator, len(k.Schemas))
	for i, s := range k.Schemas {
		evs[i] = s.NewEvaluator()
	}
	return newExclusive(evs)
}

// Not implements the "not" keyword.
type Not struct{ Schema *Schema }

func (Not) Name() string { return "not" }

func (k Not) NewEvaluator() Evaluator {
	return &notEvaluator{inner: k.Schema.NewEvaluator()}
}

// IfThenElse implements the "if"/"then"/"else" keyword triple. Then and
// Else are nil when the corresponding keyword is absent.
type IfThenElse struct {
	If, Then, Else *Schema
}

func (IfThenElse) Name() string { return "if" }

func (k IfThenElse) NewEvaluator() Evaluator {
	x := &ifThenElseEvaluator{ifEv: k.If.NewEvaluator()}
	if k.Then != nil {
		x.thenEv = k.Then.NewEvaluator()
	}
	if k.Else != nil {
		x.elseEv = k.Else.NewEvaluator()
	}
	return x
}
