// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package violet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AleutianAI/shopglow/services/assistant/datatypes"
	"github.com/AleutianAI/shopglow/services/catalog"
)

// failingStore errors on every query.
type failingStore struct{}

func (failingStore) Products(context.Context) ([]catalog.Product, error) {
	return nil, errors.New("db down")
}
func (failingStore) Categories(context.Context) ([]catalog.Category, error) {
	return nil, errors.New("db down")
}
func (failingStore) ActiveFlashSale(context.Context) (*catalog.FlashSale, error) {
	return nil, errors.New("db down")
}
func (failingStore) Stats(context.Context) (*catalog.WebsiteStats, error) {
	return nil, errors.New("db down")
}

func TestAssemble_CustomerModeReadsCatalogFields(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.SetProducts([]catalog.Product{{Name: "Serum", Price: 10}})
	store.SetCategories([]catalog.Category{{Name: "Makeup", Slug: "makeup"}})
	store.SetFlashSale(&catalog.FlashSale{Name: "Glow Week", DiscountPercentage: 15})

	bc := NewContextAssembler(store).Assemble(context.Background(), datatypes.ModeCustomer)

	assert.Len(t, bc.Products, 1)
	assert.Len(t, bc.Categories, 1)
	assert.NotNil(t, bc.FlashSale)
	assert.Nil(t, bc.Stats, "customer context does not include stats")
}

func TestAssemble_AdminModeReadsStats(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.SetProducts([]catalog.Product{{Name: "Serum"}, {Name: "Brush"}})
	store.SetPartners([]catalog.Partner{{Name: "GlowCo"}})

	bc := NewContextAssembler(store).Assemble(context.Background(), datatypes.ModeAdmin)

	assert.Nil(t, bc.Products)
	assert.NotNil(t, bc.Stats)
	assert.Equal(t, 2, bc.Stats.TotalProducts)
	assert.Equal(t, 1, bc.Stats.TotalPartners)
}

func TestAssemble_FailingStoreYieldsEmptyContext(t *testing.T) {
	assembler := NewContextAssembler(failingStore{})

	bc := assembler.Assemble(context.Background(), datatypes.ModeCustomer)
	assert.Empty(t, bc.Products)
	assert.Empty(t, bc.Categories)
	assert.Nil(t, bc.FlashSale)

	bc = assembler.Assemble(context.Background(), datatypes.ModeAdmin)
	assert.Nil(t, bc.Stats)
}

func TestAssemble_NilStoreYieldsEmptyContext(t *testing.T) {
	bc := NewContextAssembler(nil).Assemble(context.Background(), datatypes.ModeCustomer)

	assert.Empty(t, bc.Products)
	assert.Nil(t, bc.FlashSale)
}
