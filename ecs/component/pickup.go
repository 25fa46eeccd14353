package component

// Pickup is a collectible that adds Value to the score when touched.
type Pickup struct {
	Value     int
	Collected bool
}

var PickupComponent = NewComponent[Pickup]()
