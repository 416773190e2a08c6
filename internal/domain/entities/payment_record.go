package entities

import "time"

// PaymentRecord is what the service keeps after a successful charge.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (processor-index): processor
//
// Only projections are stored: the order as OrderRecord and the processor
// result as GatewayResponseRecord. Card data never reaches this type.

type PaymentRecord struct {
	ID        string                `json:"id"`
	Order     OrderRecord           `json:"order"`
	Result    GatewayResponseRecord `json:"result"`
	CreatedAt time.Time             `json:"created_at"`
}

func NewPaymentRecord(id string, order Order, result GatewayResponse, createdAt time.Time) PaymentRecord {
	return PaymentRecord{
		ID:        id,
		Order:     order.ToRecord(),
		Result:    result.ToRecord(),
		CreatedAt: createdAt.UTC(),
	}
}
