package request

// UpsertMembershipRequest represents a membership sale
type UpsertMembershipRequest struct {
	CustomerCID string `json:"customer_cid" binding:"required,max=64"`
	Tier        string `json:"tier" binding:"required"`
	// SellerCID defaults to nothing; paid tiers require it
	SellerCID string `json:"seller_cid" binding:"omitempty,max=64"`
}
