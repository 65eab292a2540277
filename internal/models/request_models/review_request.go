package request_models

type SubmitReviewRequest struct {
	Token         string `json:"token"`
	Rating        int    `json:"rating"`
	ReviewText    string `json:"reviewText"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
}
