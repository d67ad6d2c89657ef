package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Shoxzn12/level-up-pc/internal/domain"

	"github.com/sirupsen/logrus"
)

// FileProductRepository keeps the whole catalog in one JSON file. Every read loads the
// file fresh and every mutation rewrites it wholesale.
type FileProductRepository struct {
	path      string
	seedFiles []string
	log       *logrus.Logger

	// serializes load-modify-save cycles inside this process
	mu sync.Mutex
}

var _ domain.ProductRepository = (*FileProductRepository)(nil)

func NewFileProductRepository(path string, seedFiles []string, logger *logrus.Logger) *FileProductRepository {
	return &FileProductRepository{
		path:      path,
		seedFiles: seedFiles,
		log:       logger,
	}
}

// Ensure creates the data file when it is missing, seeding it from the first fixture
// found in the configured list or with an empty catalog.
func (r *FileProductRepository) Ensure() error {
	if _, err := os.Stat(r.path); err == nil {
		r.log.Debugf("Repository: Data file already present")
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		r.log.Errorf("Repository: Failed to stat data file: %v", err)
		return fmt.Errorf("could not inspect data file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		r.log.Errorf("Repository: Failed to create data directory: %v", err)
		return fmt.Errorf("could not create data directory: %w", err)
	}

	store := domain.NewStore()
	for _, seed := range r.seedFiles {
		raw, err := os.ReadFile(seed)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				r.log.Warnf("Repository: Skipping unreadable fixture %s: %v", seed, err)
			}
			continue
		}
		seeded, err := ParseFixture(raw)
		if err != nil {
			r.log.Warnf("Repository: Skipping malformed fixture %s: %v", seed, err)
			continue
		}
		r.log.Infof("Repository: Seeding catalog from %s (%d products, %d brands)", seed, len(seeded.Products), len(seeded.Brands))
		store = seeded
		break
	}

	if !r.Save(store) {
		return errors.New("could not write initial data file")
	}
	r.log.Infof("Repository: Data file created with %d products", len(store.Products))
	return nil
}

// Load never fails: unreadable or corrupt data degrades to an empty catalog.
func (r *FileProductRepository) Load() *domain.Store {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		r.log.Errorf("Repository: Failed to read data file, serving empty catalog: %v", err)
		return domain.NewStore()
	}

	store := domain.NewStore()
	if err := json.Unmarshal(raw, store); err != nil {
		r.log.Errorf("Repository: Failed to parse data file, serving empty catalog: %v", err)
		return domain.NewStore()
	}
	store.Normalize()
	return store
}

// Save replaces the data file through a temp file + rename so readers never observe a
// half-written catalog.
func (r *FileProductRepository) Save(store *domain.Store) bool {
	store.Normalize()
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		r.log.Errorf("Repository: Failed to encode catalog: %v", err)
		return false
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".catalog-*.json")
	if err != nil {
		r.log.Errorf("Repository: Failed to create temp file: %v", err)
		return false
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		r.log.Errorf("Repository: Failed to write catalog: %v", err)
		return false
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		r.log.Errorf("Repository: Failed to flush catalog: %v", err)
		return false
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		r.log.Errorf("Repository: Failed to replace data file: %v", err)
		return false
	}
	r.log.Debugf("Repository: Catalog saved (%d products)", len(store.Products))
	return true
}

func (r *FileProductRepository) ListCatalog() (*domain.Store, error) {
	store := r.Load()
	r.log.Infof("Repository: Retrieved %d products and %d brands", len(store.Products), len(store.Brands))
	return store, nil
}

func (r *FileProductRepository) GetProductByID(id int) (*domain.Product, error) {
	store := r.Load()
	idx := store.IndexOf(id)
	if idx < 0 {
		r.log.Warnf("Repository: Product with ID %d not found", id)
		return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}
	product := store.Products[idx]
	return &product, nil
}

func (r *FileProductRepository) CreateProduct(input domain.ProductInput) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	store := r.Load()
	id := store.NextID()
	if input.ID != nil {
		id = *input.ID
		if store.IndexOf(id) >= 0 {
			r.log.Warnf("Repository: Attempted to create product with existing ID %d", id)
			return nil, fmt.Errorf("product with id %d %w", id, domain.ErrConflict)
		}
	}

	product := domain.Product{
		ID:       id,
		Name:     input.Name,
		Price:    input.Price,
		Category: input.Category,
		Brand:    input.Brand,
		Image:    input.Image,
		Stock:    input.Stock,
	}
	store.Products = append(store.Products, product)

	if !r.Save(store) {
		return nil, fmt.Errorf("create product %d: %w", id, domain.ErrPersistence)
	}
	r.log.Infof("Repository: Product created successfully with ID: %d, Name: %s", product.ID, product.Name)
	return &product, nil
}

func (r *FileProductRepository) UpdateStock(id int, stock int) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	store := r.Load()
	idx := store.IndexOf(id)
	if idx < 0 {
		r.log.Warnf("Repository: Product with ID %d not found for stock update", id)
		return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}
	store.Products[idx].Stock = stock

	if !r.Save(store) {
		return nil, fmt.Errorf("update stock of product %d: %w", id, domain.ErrPersistence)
	}
	product := store.Products[idx]
	r.log.Infof("Repository: Stock for product ID %d set to %d", id, stock)
	return &product, nil
}

func (r *FileProductRepository) DeleteProduct(id int) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	store := r.Load()
	idx := store.IndexOf(id)
	if idx < 0 {
		r.log.Warnf("Repository: Attempted to delete non-existent product ID %d", id)
		return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}
	removed := store.Products[idx]
	store.Products = append(store.Products[:idx], store.Products[idx+1:]...)

	if !r.Save(store) {
		return nil, fmt.Errorf("delete product %d: %w", id, domain.ErrPersistence)
	}
	r.log.Infof("Repository: Product deleted successfully with ID: %d", id)
	return &removed, nil
}
