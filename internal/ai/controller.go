package ai

// Controller is ticked by TickManager.
type Controller interface {
	// Start is called on registration.
	Start()

	// Stop is called on unregistration.
	Stop()

	// Tick advances the controller by one simulation tick.
	Tick()
}
