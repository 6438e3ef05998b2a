package models

import (
	dErrors "sgc/pkg/domain-errors"
)

// TransitionRequest is the body of a single state-change call.
type TransitionRequest struct {
	State   State  `json:"estado"`
	Comment string `json:"comentario,omitempty"`
}

func (r TransitionRequest) Validate() error {
	if r.State == "" {
		return dErrors.New(dErrors.CodeBadRequest, "estado is required")
	}
	return nil
}

// BulkTransitionRequest is the body of a bulk state-change call.
type BulkTransitionRequest struct {
	IDs     []string `json:"ids"`
	State   State    `json:"estado"`
	Comment string   `json:"comentario,omitempty"`
}

func (r BulkTransitionRequest) Validate() error {
	if len(r.IDs) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "ids array must not be empty")
	}
	if r.State == "" {
		return dErrors.New(dErrors.CodeBadRequest, "estado is required")
	}
	return nil
}

// CommonTransitionsRequest carries the current states of a selection. The
// response is the set of targets legal for every one of them.
type CommonTransitionsRequest struct {
	States []State `json:"estados"`
}
