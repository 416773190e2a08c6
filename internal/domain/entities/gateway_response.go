package entities

// GatewayResponse is the normalized result of a successful charge.
//
// Response holds the processor payload exactly as the processor returned it
// (JSON for every current adapter); nothing in this service interprets it.
type GatewayResponse struct {
	Processor string `json:"processor"`
	Response  string `json:"response"`
}

// GatewayResponseRecord is the plain projection handed to persistence.
type GatewayResponseRecord struct {
	Processor string `json:"processor"`
	Response  string `json:"response"`
}

func NewGatewayResponse(processor string, payload []byte) GatewayResponse {
	return GatewayResponse{Processor: processor, Response: string(payload)}
}

func (r GatewayResponse) ToRecord() GatewayResponseRecord {
	return GatewayResponseRecord{Processor: r.Processor, Response: r.Response}
}
