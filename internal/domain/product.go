// domain/product.go
package domain

type ProductRepository interface {
	ListCatalog() (*Store, error)
	GetProductByID(id int) (*Product, error)
	CreateProduct(input ProductInput) (*Product, error)
	UpdateStock(id int, stock int) (*Product, error)
	DeleteProduct(id int) (*Product, error)
}

// ProductInput is the validated create payload. A nil ID asks the store to assign one.
type ProductInput struct {
	ID       *int
	Name     string
	Price    float64
	Category string
	Brand    string
	Image    string
	Stock    int
}

type CreateProductRequest struct {
	ID       *int     `json:"id"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Category string   `json:"category"`
	Brand    string   `json:"brand"`
	Image    string   `json:"image"`
	Stock    *float64 `json:"stock"`
}

type UpdateStockRequest struct {
	Stock *float64 `json:"stock"`
}

type StockResponse struct {
	ID    int `json:"id"`
	Stock int `json:"stock"`
}

type DeleteResponse struct {
	Removed Product `json:"removed"`
}
