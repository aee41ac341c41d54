package state

const (
	DefaultLocation = "Home"

	WindowGameFlow  = "GameFlow"
	WindowInventory = "Inventory"
)

// LocationStore holds the player's current location label and the active UI window.
// It is meant to be owned by the UI goroutine and is not safe for concurrent use.
type LocationStore struct {
	currentLocation string
	currentWindow   string
}

// NewLocationStore creates a store at the default location on the game flow window.
func NewLocationStore() *LocationStore {
	return &LocationStore{
		currentLocation: DefaultLocation,
		currentWindow:   WindowGameFlow,
	}
}

func (s *LocationStore) CurrentLocation() string {
	return s.currentLocation
}

func (s *LocationStore) CurrentWindow() string {
	return s.currentWindow
}

func (s *LocationStore) SetCurrentLocation(location string) {
	s.currentLocation = location
}

func (s *LocationStore) SetCurrentWindow(window string) {
	s.currentWindow = window
}
