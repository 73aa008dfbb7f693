package schema

import "github.com/nanlint/jvalidate/source"

// conjunctiveEvaluator implements allOf and the implicit AND across a
// schema's own keyword set: every child must resolve TRUE (or IGNORED,
// treated as vacuously true) for the whole to succeed; the first FALSE
// child decides the result immediately.
type conjunctiveEvaluator struct {
	children []Evaluator
	done     []bool
	failed   []bool
}

func newConjunctive(children []Evaluator) Evaluator {
	return &conjunctiveEvaluator{children: children, done: make([]bool, len(children)), failed: make([]bool, len(children))}
}

func (c *conjunctiveEvaluator) Evaluate(tok source.Token, depth int) (Result, ProblemList) {
	var collected ProblemList
	anyFalse := false
	pending := false
	for i, ch := range c.children {
		if c.done[i] {
			if c.failed[i] {
				anyFalse = true
			}
			continue
		}
		r, probs := ch.Evaluate(tok, depth)
		switch r {
		case True, Ignored:
			c.done[i] = true
		case False:
			c.done[i] = true
			c.failed[i] = true
			anyFalse = true
			collected = append(collected, probs...)
		case Pending:
			pending = true
		}
	}
	if anyFalse {
		return False, collected
	}
	if !pending {
		return True, nil
	}
	return Pending, nil
}

// disjunctiveEvaluator implements anyOf: success as soon as one child
// resolves TRUE; failure only once every child has resolved FALSE, in
// which case the branch problem lists are attached for diagnostics.
type disjunctiveEvaluator struct {
	children []Evaluator
	done     []bool
	branches []ProblemList
}

func newDisjunctive(children []Evaluator) Evaluator {
	return &disjunctiveEvaluator{children: children, done: make([]bool, len(children)), branches: make([]ProblemList, len(children))}
}

func (d *disjunctiveEvaluator) Evaluate(tok source.Token, depth int) (Result, ProblemList) {
	pending := false
	for i, ch := range d.children {
		if d.done[i] {
			continue
		}
		r, probs := ch.Evaluate(tok, depth)
		switch r {
		case True:
			return True, nil
		case Ignored:
			d.done[i] = true
		case False:
			d.done[i] = true
			d.branches[i] = probs
		case Pending:
			pending = true
		}
	}
	if pending {
		return Pending, nil
	}
	var nonEmpty []ProblemList
	for _, b := range d.branches {
		if len(b) > 0 {
			nonEmpty = append(nonEmpty, b)
		}
	}
	return False, ProblemList{{Code: "anyOf", Path: tok.Path, Branches: nonEmpty}}
}

// exclusiveEvaluator implements oneOf, following the original
// implementation's AbstractExclusiveEvaluator: a second TRUE branch decides
// FALSE immediately with every branch (including empty ones) attached as
// "oneOf.many"; once all branches resolve with none or one TRUE, dispatch
// either the single resolvable branch's problems directly, or an
// "oneOf.few" problem wrapping whichever branches actually carried
// problems (falling back to all branches if none did).
type exclusiveEvaluator struct {
	children  []Evaluator
	done      []bool
	results   []Result
	branches  []ProblemList
	trueCount int
}

func newExclusive(children []Evaluator) Evaluator {
	return &exclusiveEvaluator{
		children: children,
		done:     make([]bool, len(children)),
		results:  make([]Result, len(children)),
		branches: make([]ProblemList, len(children)),
	}
}

func (e *exclusiveEvaluator) Evaluate(tok source.Token, depth int) (Result, ProblemList) {
	for i, ch := range e.children {
		if e.done[i] {
			continue
		}
		r, probs := ch.Evaluate(tok, depth)
		switch r {
		case True:
			e.done[i] = true
			e.results[i] = True
			e.trueCount++
		case False:
			e.done[i] = true
			e.results[i] = False
			e.branches[i] = probs
		case Ignored:
			e.done[i] = true
			e.results[i] = True
			e.trueCount++
		}
		if e.trueCount >= 2 {
			return False, ProblemList{{Code: "oneOf.many", Path: tok.Path, Branches: e.branches}}
		}
	}
	allDone := true
	for _, d := range e.done {
		if !d {
			allDone = false
			break
		}
	}
	if !allDone {
		return Pending, nil
	}
	if e.trueCount == 1 {
		return True, nil
	}
	var resolvable []ProblemList
	for _, b := range e.branches {
		if len(b) > 0 {
			resolvable = append(resolvable, b)
		}
	}
	if len(resolvable) == 0 {
		resolvable = e.branches
	}
	if len(resolvable) == 1 {
		return False, resolvable[0]
	}
	return False, ProblemList{{Code: "oneOf.few", Path: tok.Path, Branches: resolvable}}
}

// notEvaluator implements not: success once the wrapped evaluator resolves
// FALSE, failure once it resolves TRUE. The wrapped evaluator's own
// problems are discarded; they describe why the instance matched, not why
// the negation failed.
type notEvaluator struct{ inner Evaluator }

func (n *notEvaluator) Evaluate(tok source.Token, depth int) (Result, ProblemList) {
	r, _ := n.inner.Evaluate(tok, depth)
	switch r {
	case True:
		return False, ProblemList{{Code: "not", Path: tok.Path, Keyword: "not"}}
	case False, Ignored:
		return True, nil
	}
	return Pending, nil
}

// ifThenElseEvaluator broadcasts every token to If, Then, and Else in
// lockstep until If resolves; from that token onward only the selected
// branch (Then on TRUE, Else on FALSE) continues to receive tokens. A
// missing Then or Else branch is vacuously TRUE.
type ifThenElseEvaluator struct {
	ifEv, thenEv, elseEv Evaluator
	ifDone               bool
	ifResult             Result
	branchDone           bool
	branchResult         Result
}

func (x *ifThenElseEvaluator) Evaluate(tok source.Token, depth int) (Result, ProblemList) {
	if x.branchDone {
		return x.branchResult, nil
	}
	if !x.ifDone {
		r, _ := x.ifEv.Evaluate(tok, depth)
		if r == True || r == False || r == Ignored {
			x.ifDone = true
			if r == Ignored {
				x.ifResult = True
			} else {
				x.ifResult = r
			}
		}
	}
	if !x.ifDone {
		if x.thenEv != nil {
			x.thenEv.Evaluate(tok, depth)
		}
		if x.elseEv != nil {
			x.elseEv.Evaluate(tok, depth)
		}
		return Pending, nil
	}
	active := x.thenEv
	if x.ifResult == False {
		active = x.elseEv
	}
	if active == nil {
		x.branchDone = true
		x.branchResult = True
		return True, nil
	}
	r, probs := active.Evaluate(tok, depth)
	if r == True || r == Ignored {
		x.branchDone = true
		x.branchResult = True
		return True, nil
	}
	if r == False {
		x.branchDone = true
		x.branchResult = False
		return False, probs
	}
	return Pending, nil
}
