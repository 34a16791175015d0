// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package catalog

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used in lightweight mode (no
// CATALOG_DB_PATH configured) and in tests.
type MemoryStore struct {
	mu         sync.RWMutex
	products   []Product
	categories []Category
	partners   []Partner
	flashSale  *FlashSale
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SetProducts replaces the product list.
func (s *MemoryStore) SetProducts(products []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

// SetCategories replaces the category list.
func (s *MemoryStore) SetCategories(categories []Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
}

// SetPartners replaces the partner list.
func (s *MemoryStore) SetPartners(partners []Partner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partners = partners
}

// SetFlashSale sets the active promotion; nil clears it.
func (s *MemoryStore) SetFlashSale(sale *FlashSale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashSale = sale
}

// Products implements Store.
func (s *MemoryStore) Products(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// Categories implements Store.
func (s *MemoryStore) Categories(ctx context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

// ActiveFlashSale implements Store.
func (s *MemoryStore) ActiveFlashSale(ctx context.Context) (*FlashSale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.flashSale == nil {
		return nil, nil
	}
	sale := *s.flashSale
	return &sale, nil
}

// Stats implements Store.
func (s *MemoryStore) Stats(ctx context.Context) (*WebsiteStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := &WebsiteStats{
		TotalProducts: len(s.products),
		TotalPartners: len(s.partners),
	}
	if s.flashSale != nil {
		stats.ActiveFlashSales = 1
	}
	return stats, nil
}
