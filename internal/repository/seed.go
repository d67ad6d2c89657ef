package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Shoxzn12/level-up-pc/internal/domain"

	"github.com/spf13/cast"
)

type fixtureFile struct {
	Products []interface{}  `json:"products"`
	Brands   []domain.Brand `json:"brands"`
}

// ParseFixture accepts either a full catalog object or a bare product array and
// normalizes every entry into a Product. Entries that are not JSON objects are skipped.
func ParseFixture(raw []byte) (*domain.Store, error) {
	var fixture fixtureFile
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &fixture.Products); err != nil {
			return nil, fmt.Errorf("decode product array: %w", err)
		}
	} else if err := json.Unmarshal(trimmed, &fixture); err != nil {
		return nil, fmt.Errorf("decode catalog object: %w", err)
	}

	store := domain.NewStore()
	if fixture.Brands != nil {
		store.Brands = fixture.Brands
	}

	used := make(map[int]bool, len(fixture.Products))
	var pending []int
	for _, item := range fixture.Products {
		entry, err := cast.ToStringMapE(item)
		if err != nil {
			continue
		}
		product, ok := normalizeProduct(entry)
		if !ok || used[product.ID] {
			pending = append(pending, len(store.Products))
		} else {
			used[product.ID] = true
		}
		store.Products = append(store.Products, product)
	}

	// entries without a usable id get the next free one after the seeded maximum
	for _, idx := range pending {
		store.Products[idx].ID = store.NextID()
	}
	return store, nil
}

// normalizeProduct coerces loosely typed fixture values. The bool reports whether the
// entry carried a usable id.
func normalizeProduct(entry map[string]interface{}) (domain.Product, bool) {
	product := domain.Product{
		Name:     stringOr(entry["name"], domain.DefaultProductName),
		Category: stringOr(entry["category"], ""),
		Brand:    stringOr(entry["brand"], ""),
		Image:    stringOr(entry["image"], ""),
	}

	if price, err := cast.ToFloat64E(entry["price"]); err == nil && price > 0 {
		product.Price = price
	}
	if stock, err := cast.ToIntE(entry["stock"]); err == nil && stock > 0 {
		product.Stock = stock
	}

	id, err := cast.ToIntE(entry["id"])
	if err != nil || id <= 0 {
		return product, false
	}
	product.ID = id
	return product, true
}

func stringOr(value interface{}, fallback string) string {
	if value == nil {
		return fallback
	}
	s := strings.TrimSpace(cast.ToString(value))
	if s == "" {
		return fallback
	}
	return s
}
