// Package scripts replays recorded gesture sequences against a graph store.
package scripts

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"graphboard-backend/domain/core/entities"
)

// Step operations.
const (
	OpCreateNode      = "create_node"
	OpConnect         = "connect"
	OpDeleteNode      = "delete_node"
	OpDeleteEdge      = "delete_edge"
	OpUpdateNodeLabel = "update_node_label"
	OpAddNode         = "add_node"
	OpAddEdge         = "add_edge"
)

// Script is a YAML list of gestures, optionally with a default viewport.
//
//	viewport: {width: 800, height: 600}
//	steps:
//	  - op: create_node
//	    x: 10
//	    y: 20
//	  - op: connect
//	    source: "1"
//	    target: "2"
type Script struct {
	Viewport *entities.Viewport `yaml:"viewport"`
	Steps    []Step             `yaml:"steps"`
}

// Step is one gesture or raw store operation.
type Step struct {
	Op string `yaml:"op"`

	// create_node: fixed position (both or neither) and/or viewport
	X        *float64           `yaml:"x"`
	Y        *float64           `yaml:"y"`
	Viewport *entities.Viewport `yaml:"viewport"`

	// connect
	Source string `yaml:"source"`
	Target string `yaml:"target"`

	// delete_node, delete_edge, update_node_label
	NodeID string  `yaml:"node_id"`
	EdgeID string  `yaml:"edge_id"`
	Label  *string `yaml:"label"`

	// add_node, add_edge: payloads stored as given
	Node *entities.Node `yaml:"node"`
	Edge *entities.Edge `yaml:"edge"`
}

// Parse reads and checks a script. Nothing is applied when it fails.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var script Script
	if err := dec.Decode(&script); err != nil {
		if errors.Is(err, io.EOF) {
			return &script, nil
		}
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	if vp := script.Viewport; vp != nil && (vp.Width <= 0 || vp.Height <= 0) {
		return nil, fmt.Errorf("script viewport must be positive")
	}
	for i, step := range script.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}
	return &script, nil
}

func (s Step) validate() error {
	switch s.Op {
	case OpCreateNode:
		if (s.X == nil) != (s.Y == nil) {
			return errors.New("x and y must be given together")
		}
		if vp := s.Viewport; vp != nil && (vp.Width <= 0 || vp.Height <= 0) {
			return errors.New("viewport must be positive")
		}
	case OpConnect:
		if s.Source == "" || s.Target == "" {
			return errors.New("source and target are required")
		}
	case OpDeleteNode:
		if s.NodeID == "" {
			return errors.New("node_id is required")
		}
	case OpDeleteEdge:
		if s.EdgeID == "" {
			return errors.New("edge_id is required")
		}
	case OpUpdateNodeLabel:
		if s.NodeID == "" || s.Label == nil {
			return errors.New("node_id and label are required")
		}
	case OpAddNode:
		if s.Node == nil {
			return errors.New("node is required")
		}
	case OpAddEdge:
		if s.Edge == nil {
			return errors.New("edge is required")
		}
	case "":
		return errors.New("op is required")
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
	return nil
}
