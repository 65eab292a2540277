package response_models

// ReviewPrefill carries the data the submission form is rendered with.
type ReviewPrefill struct {
	OrderID       string `json:"orderId"`
	ProductID     string `json:"productId"`
	BrandID       string `json:"brandId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	ProductName   string `json:"productName"`
}

type SubmitReviewResponse struct {
	FeedbackID string `json:"feedbackId"`
}

type SendReviewLinkResponse struct {
	Token string `json:"token"`
}
