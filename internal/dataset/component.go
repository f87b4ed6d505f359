package dataset

// Component is one node of the dataset tree: either a group or a leaf
// bound to one file role. The Data payload depends on the component
// type: entity record lists for station and rights files, time series
// lists for time series files.
type Component struct {
	Type     ComponentType
	Name     string
	FileName string
	Data     any

	// Dirty marks unsaved in-memory edits. Reading from disk clears it.
	Dirty bool
	// ErrorReading is set when the component's input file failed to
	// read during the last dataset load.
	ErrorReading bool
	// Visible reflects the control switches; hidden components are not
	// part of the active model configuration.
	Visible bool

	// Children of a group node, in registry order.
	Children []*Component
}

func newComponent(t ComponentType) *Component {
	return &Component{
		Type:    t,
		Name:    t.Name(),
		Visible: true,
	}
}

// IsGroup reports whether the component is a group node.
func (c *Component) IsGroup() bool {
	return c.Type.IsGroup()
}

// HasData reports whether a payload has been stored on the component.
func (c *Component) HasData() bool {
	return c.Data != nil
}
