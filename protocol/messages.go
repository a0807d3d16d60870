package protocol

// InboundMessage is a raw button event from a simulator client
type InboundMessage struct {
	Button string `json:"button"`
	Down   bool   `json:"down"`
}

// DeviceSummary describes what a device is currently showing
type DeviceSummary struct {
	DeviceID string `json:"device_id"`
	Screen   string `json:"screen"`
	Parties  int    `json:"parties"`
	Mode     string `json:"mode"`
	DeckSize int    `json:"deck_size,omitempty"`
	Scores   []int  `json:"scores,omitempty"`
}
