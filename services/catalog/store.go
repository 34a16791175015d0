// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package catalog exposes read-only queries over the Shop&Glow business
// data: products, categories, partners, flash sales and aggregate stats.
//
// Every query may legitimately return empty or absent data; the
// assistant treats the result as a best-effort snapshot and never fails
// a response because a catalog read came back short.
package catalog

import (
	"context"
	"time"
)

// Product is a catalog entry summarised for prompt context.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

// Category is a top-level catalog section.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Partner is a curated vendor. At most two partners are admitted per
// category.
type Partner struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	CommissionRate float64 `json:"commissionRate"`
}

// FlashSale is a time-boxed promotion.
type FlashSale struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	DiscountPercentage int       `json:"discountPercentage"`
	EndsAt             time.Time `json:"endsAt"`
}

// WebsiteStats are the aggregate counts surfaced in admin mode.
type WebsiteStats struct {
	TotalProducts    int `json:"totalProducts"`
	TotalPartners    int `json:"totalPartners"`
	ActiveFlashSales int `json:"activeFlashSales"`
}

// Store is the read-only data-access collaborator for the assistant.
//
// Implementations return (nil, nil) rather than an error when a query
// simply has no data; errors are reserved for real failures.
type Store interface {
	Products(ctx context.Context) ([]Product, error)
	Categories(ctx context.Context) ([]Category, error)
	// ActiveFlashSale returns the current promotion, or nil when none
	// is running.
	ActiveFlashSale(ctx context.Context) (*FlashSale, error)
	Stats(ctx context.Context) (*WebsiteStats, error)
}
