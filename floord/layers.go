package floord

type LayerRole string

const (
	RoleWall    LayerRole = "wall"
	RoleFloor   LayerRole = "floor"
	RoleCeiling LayerRole = "ceiling"
)

// A LayerConfig describes how one layer of the model is extruded.
type LayerConfig struct {
	Role LayerRole

	// Height is the extrusion distance along the Z axis.
	Height float64

	// VerticalShift is the Z coordinate of the bottom of the layer.
	VerticalShift float64

	Enabled bool
}

// UsesEdges is true for layers which are traced along the edges of a mask
// rather than directly on its filled regions.
func (l LayerConfig) UsesEdges() bool {
	return l.Role == RoleWall
}
