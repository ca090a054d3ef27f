package main

import "errors"

// Sentinel errors for command operations
var (
	ErrEvaluationFailed = errors.New("one or more expressions failed")
	ErrCrossCheckFailed = errors.New("cross-check disagrees with CEL")
	ErrCasesFailed      = errors.New("one or more cases failed")
	ErrNoCaseFiles      = errors.New("no case documents found")
	ErrNoExpressions    = errors.New("no expressions given")
)
