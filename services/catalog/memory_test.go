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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_EmptyQueries(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	products, err := store.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	sale, err := store.ActiveFlashSale(ctx)
	require.NoError(t, err)
	assert.Nil(t, sale)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &WebsiteStats{}, stats)
}

func TestMemoryStore_SeededData(t *testing.T) {
	store := NewMemoryStore()
	store.SetProducts([]Product{{Name: "Serum", Price: 24.99}})
	store.SetCategories([]Category{{Name: "Makeup", Slug: "makeup"}})
	store.SetPartners([]Partner{{Name: "GlowCo"}, {Name: "PetPro"}})
	store.SetFlashSale(&FlashSale{Name: "Glow Week", DiscountPercentage: 15})
	ctx := context.Background()

	products, err := store.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Serum", products[0].Name)

	sale, err := store.ActiveFlashSale(ctx)
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Equal(t, 15, sale.DiscountPercentage)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &WebsiteStats{TotalProducts: 1, TotalPartners: 2, ActiveFlashSales: 1}, stats)
}

func TestMemoryStore_FlashSaleReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	store.SetFlashSale(&FlashSale{Name: "Glow Week"})

	sale, err := store.ActiveFlashSale(context.Background())
	require.NoError(t, err)
	sale.Name = "mutated"

	again, err := store.ActiveFlashSale(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Glow Week", again.Name)
}
