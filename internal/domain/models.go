package domain

import "encoding/json"

const DefaultProductName = "Producto"

type Product struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Image    string  `json:"image"`
	Stock    int     `json:"stock"`
}

// Brand is stored and served as-is; its shape belongs to the frontend.
type Brand = json.RawMessage

// Store is the whole persisted catalog file.
type Store struct {
	Products []Product `json:"products"`
	Brands   []Brand   `json:"brands"`
}

func NewStore() *Store {
	return &Store{Products: []Product{}, Brands: []Brand{}}
}

// Normalize replaces nil slices so the file and API always carry arrays.
func (s *Store) Normalize() {
	if s.Products == nil {
		s.Products = []Product{}
	}
	if s.Brands == nil {
		s.Brands = []Brand{}
	}
}

func (s *Store) IndexOf(id int) int {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return i
		}
	}
	return -1
}

// NextID returns max(existing ids) + 1, or 1 for an empty catalog.
func (s *Store) NextID() int {
	maxID := 0
	for _, p := range s.Products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}
