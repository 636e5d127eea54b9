package entities

// DefaultNodeLabel is the label given to nodes created from the UI.
const DefaultNodeLabel = "New Node"

// Position is a node's coordinates on the canvas.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NodeData carries the user-visible payload of a node.
type NodeData struct {
	Label string `json:"label" yaml:"label"`
}

// Node is a vertex of the editable graph. Its JSON form is the shape the
// rendering widget consumes directly.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Data     NodeData `json:"data" yaml:"data"`
	Position Position `json:"position" yaml:"position"`
}

// NewNode builds a node from its parts.
func NewNode(id, label string, x, y float64) Node {
	return Node{
		ID:       id,
		Data:     NodeData{Label: label},
		Position: Position{X: x, Y: y},
	}
}

// Label returns the node's label.
func (n Node) Label() string {
	return n.Data.Label
}

// Viewport is the visible canvas area a new node is placed into.
type Viewport struct {
	Width  float64 `json:"width" yaml:"width" validate:"gt=0"`
	Height float64 `json:"height" yaml:"height" validate:"gt=0"`
}
