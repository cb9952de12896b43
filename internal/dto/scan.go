package dto

// ScanResponse is returned by the receipt and voice scan endpoints.
// Mode "auto" means the transaction was persisted, "preview" means the
// payload is returned for client-side review before saving.
type ScanResponse struct {
	Success     bool               `json:"success"`
	Mode        string             `json:"mode"`
	Transaction TransactionPayload `json:"transaction"`
}
