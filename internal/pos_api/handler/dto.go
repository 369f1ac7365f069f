package handler

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	StoreID        int64  `json:"store_id" binding:"required"`
	OrganizationID int64  `json:"organization_id" binding:"required"`
	Name           string `json:"name" binding:"required"`
	SKU            string `json:"sku" binding:"required"`
	Price          string `json:"price" binding:"required"`
	Cost           string `json:"cost" binding:"required"`
	InventoryCount int64  `json:"inventory_count" binding:"min=0"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             string `json:"id"`
	StoreID        int64  `json:"store_id"`
	OrganizationID int64  `json:"organization_id"`
	Name           string `json:"name"`
	SKU            string `json:"sku"`
	Price          string `json:"price"`
	Cost           string `json:"cost"`
	InventoryCount int64  `json:"inventory_count"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// CreateTransactionRequest represents a request to open a new POS transaction
type CreateTransactionRequest struct {
	StoreID        int64  `json:"store_id" binding:"required"`
	OrganizationID int64  `json:"organization_id" binding:"required"`
	UserID         string `json:"user_id" binding:"required,uuid"`
}

// TransactionItemResponse represents a transaction line item in API responses
type TransactionItemResponse struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Price          string `json:"price"`
	Cost           string `json:"cost"`
	UnitsSold      int64  `json:"units_sold"`
	StoreID        int64  `json:"store_id"`
	OrganizationID int64  `json:"organization_id"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID             string                    `json:"id"`
	StoreID        int64                     `json:"store_id"`
	OrganizationID int64                     `json:"organization_id"`
	UserID         string                    `json:"user_id"`
	Status         string                    `json:"status"`
	ReportTitle    string                    `json:"report_title,omitempty"`
	Details        map[string]string         `json:"details,omitempty"`
	Items          []TransactionItemResponse `json:"items,omitempty"`
	CreatedAt      string                    `json:"created_at"`
	UpdatedAt      string                    `json:"updated_at"`
}

// PublishItemRequest is one line item of a publish submission. Monetary
// values arrive as decimal strings and store/organization identifiers as
// strings, matching what POS clients send; both are parsed server side.
type PublishItemRequest struct {
	ID             *string `json:"id,omitempty"`
	ProductID      string  `json:"product_id" binding:"required,uuid"`
	ProductName    string  `json:"product_name" binding:"required"`
	Price          string  `json:"price" binding:"required"`
	Cost           string  `json:"cost" binding:"required"`
	UnitsSold      int64   `json:"units_sold" binding:"min=0"`
	StoreID        string  `json:"store_id" binding:"required"`
	OrganizationID string  `json:"organization_id" binding:"required"`
}

// PublishReportRequest represents a request to publish a sale report.
// An empty item list is deliberately not rejected by binding; the publish
// engine classifies it and responds with a structured error.
type PublishReportRequest struct {
	Title   string               `json:"title" binding:"required"`
	UserID  string               `json:"user_id" binding:"required,uuid"`
	Details map[string]string    `json:"details,omitempty"`
	Items   []PublishItemRequest `json:"items"`
}

// PublishReportResponse represents a successful publish in API responses
type PublishReportResponse struct {
	Status string                    `json:"status"`
	Items  []TransactionItemResponse `json:"transaction_items"`
}

// SalesEntryLineResponse represents one sold line in a sales history entry
type SalesEntryLineResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitsSold   int64  `json:"units_sold"`
	Price       string `json:"price"`
	Cost        string `json:"cost"`
}

// SalesEntryResponse represents a sales history entry in API responses
type SalesEntryResponse struct {
	TransactionID  string                   `json:"transaction_id"`
	StoreID        int64                    `json:"store_id"`
	OrganizationID int64                    `json:"organization_id"`
	UserID         string                   `json:"user_id"`
	ReportTitle    string                   `json:"report_title,omitempty"`
	Lines          []SalesEntryLineResponse `json:"lines"`
	GrossTotal     string                   `json:"gross_total"`
	PublishedAt    string                   `json:"published_at"`
}

// SalesListResponse represents a list of sales history entries
type SalesListResponse struct {
	Sales []SalesEntryResponse `json:"sales"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}
