package grid

import (
	"fmt"
)

// Action is a selection change requested by the user or the host.
type Action int

const (
	// ActionClear empties the selection.
	ActionClear Action = iota
	// ActionSelect replaces the selection with the target.
	ActionSelect
	// ActionAppend adds the target to the selection.
	ActionAppend
	// ActionDelete removes the target from the selection.
	ActionDelete
	// ActionAddMulti extends the selection over a contiguous range ending at the target.
	ActionAddMulti
)

func (a Action) String() string {
	switch a {
	case ActionClear:
		return "clear"
	case ActionSelect:
		return "select"
	case ActionAppend:
		return "append"
	case ActionDelete:
		return "delete"
	case ActionAddMulti:
		return "add-multi"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Selection is an unordered set of item ids.
type Selection[T comparable] map[T]struct{}

// NewSelection returns a selection holding ids.
func NewSelection[T comparable](ids ...T) Selection[T] {
	s := make(Selection[T], len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Selection[T]) Has(id T) bool {
	_, ok := s[id]
	return ok
}

// Clone returns an independent copy.
func (s Selection[T]) Clone() Selection[T] {
	c := make(Selection[T], len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Equal reports whether both selections hold the same ids.
func (s Selection[T]) Equal(o Selection[T]) bool {
	if len(s) != len(o) {
		return false
	}
	for id := range s {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

// Ordered returns the selected ids in the order they appear in order.
func (s Selection[T]) Ordered(order []T) []T {
	var ids []T
	for _, id := range order {
		if s.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// MissingTargetIDError is returned when an action that needs a target id got none.
type MissingTargetIDError struct {
	Action Action
}

func (e *MissingTargetIDError) Error() string {
	return "missing target id for action " + e.Action.String()
}

// InconsistentSelectionError is returned when the selection or the target is not part of the id list.
type InconsistentSelectionError struct {
	Reason string
}

func (e *InconsistentSelectionError) Error() string {
	return "selection has mismatch with id list: " + e.Reason
}

// UnknownActionError is returned for an Action value outside the known set.
type UnknownActionError struct {
	Action Action
}

func (e *UnknownActionError) Error() string {
	return "unknown selection action " + e.Action.String()
}

// UpdateSelection computes the selection that results from applying action to current.
// current is never modified.
func UpdateSelection[T comparable](action Action, target *T, allIDs []T, current Selection[T]) (Selection[T], error) {
	if action == ActionClear {
		return NewSelection[T](), nil
	}

	switch action {
	case ActionSelect, ActionAppend, ActionDelete, ActionAddMulti:
	default:
		return nil, &UnknownActionError{Action: action}
	}

	if target == nil {
		return nil, &MissingTargetIDError{Action: action}
	}
	id := *target

	switch action {
	case ActionSelect:
		return NewSelection(id), nil
	case ActionAppend:
		res := current.Clone()
		res[id] = struct{}{}
		return res, nil
	case ActionDelete:
		res := current.Clone()
		delete(res, id)
		return res, nil
	}

	res := current.Clone()
	if err := addRange(id, allIDs, res); err != nil {
		return nil, err
	}
	return res, nil
}

// addRange adds to sel every id from target to the nearest bound of the
// current selection, both ends included. A target inside the bounds extends
// from the closer bound, the first one on a tie. Duplicate ids in allIDs
// resolve to their first index.
func addRange[T comparable](target T, allIDs []T, sel Selection[T]) error {
	targetIdx, firstIdx, lastIdx := -1, -1, -1
	for i, id := range allIDs {
		if id == target && targetIdx < 0 {
			targetIdx = i
		}
		if sel.Has(id) {
			if firstIdx < 0 {
				firstIdx = i
			}
			lastIdx = i
		}
	}

	if targetIdx < 0 {
		return &InconsistentSelectionError{Reason: fmt.Sprintf("target %v is not listed", target)}
	}
	if !allListed(sel, allIDs) {
		return &InconsistentSelectionError{Reason: "selected ids are not listed"}
	}

	sel[target] = struct{}{}
	if firstIdx < 0 {
		return nil
	}

	var lo, hi int
	switch {
	case targetIdx < firstIdx:
		lo, hi = targetIdx, firstIdx
	case targetIdx > lastIdx:
		lo, hi = lastIdx, targetIdx
	case targetIdx-firstIdx <= lastIdx-targetIdx:
		lo, hi = firstIdx, targetIdx
	default:
		lo, hi = targetIdx, lastIdx
	}

	for _, id := range allIDs[lo : hi+1] {
		sel[id] = struct{}{}
	}
	return nil
}

func allListed[T comparable](sel Selection[T], allIDs []T) bool {
	listed := NewSelection(allIDs...)
	for id := range sel {
		if !listed.Has(id) {
			return false
		}
	}
	return true
}
