package domain

import "context"

// ServicePort defines the service contract for analyze
type ServicePort interface {
	Analyze(ctx context.Context, in Submission) (Result, error)
}

// CorpusPort is the read side of the accumulator used by meta endpoints
type CorpusPort interface {
	Len() int
}
