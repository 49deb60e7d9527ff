package batch

import (
	"errors"
	"fmt"

	"Resonator/internal/calc/bowl"
)

const MaxItems = 256

var (
	ErrNoItems      = errors.New("no items")
	ErrTooManyItems = errors.New("too many items")
)

type BowlBatchInput struct {
	Items []bowl.Input `json:"items"`
}

type BowlBatchResult struct {
	Results []bowl.Params `json:"results"`
}

// CalculateBowl runs every item through its own calculator and fails on the
// first invalid one.
func CalculateBowl(in BowlBatchInput) (BowlBatchResult, error) {
	if len(in.Items) == 0 {
		return BowlBatchResult{}, ErrNoItems
	}
	if len(in.Items) > MaxItems {
		return BowlBatchResult{}, fmt.Errorf("%w: %d > %d", ErrTooManyItems, len(in.Items), MaxItems)
	}
	out := BowlBatchResult{Results: make([]bowl.Params, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := bowl.Calculate(item)
		if err != nil {
			return BowlBatchResult{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
