package server

import "github.com/jostly/terragen/internal/mesh"

// Client actions.
const (
	ActionSubdivide = "subdivide"
	ActionDistort   = "distort"
	ActionRelax     = "relax"
	ActionPlates    = "plates"
	ActionMerge     = "merge"
	ActionReset     = "reset"
)

// Request is a client message.
type Request struct {
	Action string `json:"action"`
	// Degree is the flip count for distort and the iteration count for relax.
	Degree    uint32 `json:"degree,omitempty"`
	Seed      uint64 `json:"seed,omitempty"`
	Dual      *bool  `json:"dual,omitempty"`
	Wireframe *bool  `json:"wireframe,omitempty"`
}

// MeshMessage carries the flattened mesh after every action.
type MeshMessage struct {
	Type    string `json:"type"`
	Session string `json:"session"`
	Seed    uint64 `json:"seed"`
	Level   uint8  `json:"level"`
	Nodes   uint32 `json:"nodes"`
	Edges   uint32 `json:"edges"`
	Faces   uint32 `json:"faces"`
	Tiles   int    `json:"tiles,omitempty"`
	Plates  int    `json:"plates,omitempty"`
	// Saturated is set when a distortion ran out of acceptable flips.
	Saturated bool    `json:"saturated,omitempty"`
	ElapsedMS float64 `json:"elapsed_ms"`
	mesh.Flat
}

// ErrorMessage reports a rejected or failed action.
type ErrorMessage struct {
	Type    string `json:"type"`
	Session string `json:"session"`
	Error   string `json:"error"`
}
