package component

// Placed marks an entity that was instantiated from an object template, so
// the editor can write it back into a level document.
type Placed struct {
	ObjectID uint32
	Template string
}

var PlacedComponent = NewComponent[Placed]()
