package schema

import "github.com/nanlint/jvalidate/problem"

// Local aliases keep the many keyword files below from repeating the
// problem. qualifier on every return statement.
type ProblemList = problem.List
type Problem = problem.Problem
