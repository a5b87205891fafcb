package entity

// ReceiptHeader holds the shop header printed at the top of a receipt.
type ReceiptHeader struct {
	ShopName string `json:"shop_name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// ReceiptLine is a single printed line of a bill.
type ReceiptLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Total    string `json:"total,omitempty"`
}

// Receipt is a printable view of a bill. It is composed at print time and never stored.
type Receipt struct {
	Header      ReceiptHeader `json:"header"`
	BillNo      string        `json:"bill_no"`
	Date        string        `json:"date"`
	Employee    string        `json:"employee"`
	Customer    string        `json:"customer"`
	BillingType string        `json:"billing_type"`
	Lines       []ReceiptLine `json:"lines"`
	Discount    string        `json:"discount,omitempty"`
	Total       string        `json:"total"`
	Points      int64         `json:"points,omitempty"`
}
