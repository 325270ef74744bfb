package dto

// PurchaseResponse answers the purchase verification query.
type PurchaseResponse struct {
	Purchased bool `json:"purchased"`
}
