package request_models

type SendReviewLinkRequest struct {
	OrderID       string `json:"orderId"`
	ProductID     string `json:"productId"`
	BrandID       string `json:"brandId"`
	ProductName   string `json:"productName"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
}
