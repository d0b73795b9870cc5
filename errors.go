package canopy

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned by [NewTree] when given zero elements.
// An empty tree has no defined root.
var ErrEmptyInput = errors.New("cannot build a tree from zero elements")

// IndexOutOfRangeError is returned when a proof is requested,
// or offered, for a leaf index the tree does not contain.
type IndexOutOfRangeError struct {
	Index     int
	NumLeaves int
}

func (e IndexOutOfRangeError) Error() string {
	return fmt.Sprintf(
		"leaf index %d out of range for tree with %d leaves",
		e.Index, e.NumLeaves,
	)
}

// ProofLengthError is returned from [*PartialTree.AddLeaf]
// when a proof does not have exactly one step
// per level below the root.
type ProofLengthError struct {
	Got, Want int
}

func (e ProofLengthError) Error() string {
	return fmt.Sprintf("proof has %d steps, want %d", e.Got, e.Want)
}

// ProofMismatchError is returned from [*PartialTree.AddLeaf]
// when a proof fails to reproduce the trusted root.
type ProofMismatchError struct {
	Index int
}

func (e ProofMismatchError) Error() string {
	return fmt.Sprintf("proof for leaf %d does not reproduce the root", e.Index)
}
