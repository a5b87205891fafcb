package request

// AdjustPointsRequest is a manual change to a loyalty balance
type AdjustPointsRequest struct {
	Delta  int64  `json:"delta"`
	Reason string `json:"reason" binding:"required,max=200"`
}
