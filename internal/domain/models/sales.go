package models

// LedgerKey is the store key holding the whole date -> records mapping.
const LedgerKey = "dailySalesData"

// DateLayout is the ISO calendar date format used for ledger keys.
const DateLayout = "2006-01-02"

// ProductSaleRecord captures one product's sales for a single day.
type ProductSaleRecord struct {
	ID           string  `json:"id" bson:"id"`
	ProductName  string  `json:"productName" bson:"productName"`
	InitialQty   int     `json:"initialQty" bson:"initialQty"`
	QtySold      int     `json:"qtySold" bson:"qtySold"`
	PricePerUnit float64 `json:"pricePerUnit" bson:"pricePerUnit"`
	TotalSales   float64 `json:"totalSales" bson:"totalSales"`
	RemainingQty int     `json:"remainingQty" bson:"remainingQty"`
}

// Ledger maps an ISO date to the records entered for that day, in insertion order.
type Ledger map[string][]ProductSaleRecord

// Clone returns a copy that shares no slices with the receiver.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for date, records := range l {
		cp := make([]ProductSaleRecord, len(records))
		copy(cp, records)
		out[date] = cp
	}
	return out
}

// RecordInput is the user-supplied part of a record before validation.
type RecordInput struct {
	ProductName  string   `json:"productName" validate:"required"`
	InitialQty   *int     `json:"initialQty" validate:"required,gte=0"`
	QtySold      *int     `json:"qtySold" validate:"required,gte=0"`
	PricePerUnit *float64 `json:"pricePerUnit" validate:"required,gte=0"`
}
