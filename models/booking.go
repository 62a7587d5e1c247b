package models

import (
	"encoding/json"

	"github.com/spf13/cast"
)

// Booking is the dashboard projection of a booking document.
type Booking struct {
	ID                  string                 `json:"id"`
	ServiceName         string                 `json:"serviceName"`
	Price               float64                `json:"price"`
	SelectedDestination string                 `json:"selectedDestination"`
	StartLocation       string                 `json:"startLocation"`
	EndLocation         string                 `json:"endLocation"`
	Fields              map[string]interface{} `json:"-"` // every stored field, verbatim
}

// BookingFromDocument combines the store identifier with all stored fields.
// Typed fields are coerced best-effort; the raw values stay in Fields.
func BookingFromDocument(doc Document) Booking {
	fields := make(map[string]interface{}, len(doc.Fields))
	for k, v := range doc.Fields {
		fields[k] = v
	}
	return Booking{
		ID:                  doc.ID,
		ServiceName:         cast.ToString(fields["serviceName"]),
		Price:               cast.ToFloat64(fields["price"]),
		SelectedDestination: cast.ToString(fields["selectedDestination"]),
		StartLocation:       cast.ToString(fields["startLocation"]),
		EndLocation:         cast.ToString(fields["endLocation"]),
		Fields:              fields,
	}
}

// MarshalJSON flattens the booking to {id, ...stored fields}. Stored values
// win over the coerced ones so the dashboard sees what the store holds.
func (b Booking) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"serviceName":         b.ServiceName,
		"price":               b.Price,
		"selectedDestination": b.SelectedDestination,
		"startLocation":       b.StartLocation,
		"endLocation":         b.EndLocation,
	}
	for k, v := range b.Fields {
		out[k] = v
	}
	out["id"] = b.ID
	return json.Marshal(out)
}
