package messages

// HTTP routes served by the game server.
const (
	PathChat           = "/chat"
	PathReset          = "/reset"
	PathCheckInventory = "/check_inventory"
	PathCheckLocation  = "/check_location"
	PathCheckObs       = "/check_obs"
)

// MessageType identifies the kind of result a client request produced.
type MessageType string

const (
	MessageTypeChat        MessageType = "chat"
	MessageTypeReset       MessageType = "reset"
	MessageTypeInventory   MessageType = "inventory"
	MessageTypeLocation    MessageType = "location"
	MessageTypeObservation MessageType = "observation"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	UserInput string `json:"user_input"`
}

// ChatResponse is the reply to POST /chat.
type ChatResponse struct {
	Message  string `json:"message"`
	Location string `json:"location"`
	Win      bool   `json:"win"`
}

type InventoryResponse struct {
	Inventory string `json:"inventory"`
}

type LocationResponse struct {
	Location string `json:"location"`
}

type ObservationResponse struct {
	Obs string `json:"obs"`
}
