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
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/shopglow/services/assistant/datatypes"
	"github.com/AleutianAI/shopglow/services/catalog"
)

// BusinessContext is a best-effort snapshot of business data used to
// condition response generation. Every field is optional; prompt
// rendering substitutes a placeholder sentence for whatever is missing.
type BusinessContext struct {
	Products   []catalog.Product
	Categories []catalog.Category
	FlashSale  *catalog.FlashSale
	Stats      *catalog.WebsiteStats
}

// ContextAssembler builds BusinessContext snapshots from the catalog
// collaborators, scoped to the session mode.
type ContextAssembler struct {
	store catalog.Store
}

// NewContextAssembler creates an assembler over the given store. A nil
// store is valid and yields empty snapshots.
func NewContextAssembler(store catalog.Store) *ContextAssembler {
	return &ContextAssembler{store: store}
}

// Assemble reads the fields the given mode needs: catalog data for
// customer sessions, aggregate stats for admin sessions.
//
// Each read is independent; a failing collaborator is logged and its
// field left empty. Assemble never returns an error, so a missing
// collaborator never aborts response generation.
func (a *ContextAssembler) Assemble(ctx context.Context, mode datatypes.SessionMode) BusinessContext {
	var bc BusinessContext
	if a == nil || a.store == nil {
		return bc
	}

	g, gctx := errgroup.WithContext(ctx)
	if mode == datatypes.ModeAdmin {
		g.Go(func() error {
			stats, err := a.store.Stats(gctx)
			if err != nil {
				slog.Warn("Failed to read website stats for context", "error", err)
				return nil
			}
			bc.Stats = stats
			return nil
		})
	} else {
		g.Go(func() error {
			products, err := a.store.Products(gctx)
			if err != nil {
				slog.Warn("Failed to read products for context", "error", err)
				return nil
			}
			bc.Products = products
			return nil
		})
		g.Go(func() error {
			categories, err := a.store.Categories(gctx)
			if err != nil {
				slog.Warn("Failed to read categories for context", "error", err)
				return nil
			}
			bc.Categories = categories
			return nil
		})
		g.Go(func() error {
			sale, err := a.store.ActiveFlashSale(gctx)
			if err != nil {
				slog.Warn("Failed to read active flash sale for context", "error", err)
				return nil
			}
			bc.FlashSale = sale
			return nil
		})
	}
	_ = g.Wait()
	return bc
}
