package entities

// EdgeTypeStraight is the only edge rendering hint produced by the editor.
const EdgeTypeStraight = "straight"

// Edge connects two nodes by id. Source and target are not required to
// exist in the graph.
type Edge struct {
	ID       string `json:"id" yaml:"id"`
	Source   string `json:"source" yaml:"source"`
	Target   string `json:"target" yaml:"target"`
	Type     string `json:"type" yaml:"type"`
	Animated bool   `json:"animated" yaml:"animated"`
}

// NewStraightEdge builds an animated straight edge, the form every
// connect gesture produces.
func NewStraightEdge(id, source, target string) Edge {
	return Edge{
		ID:       id,
		Source:   source,
		Target:   target,
		Type:     EdgeTypeStraight,
		Animated: true,
	}
}
