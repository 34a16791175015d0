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
	"fmt"
	"strings"

	"github.com/AleutianAI/shopglow/services/assistant/datatypes"
)

// Placeholder sentences used when a context field is absent.
const (
	placeholderProducts   = "Product catalog is being loaded."
	placeholderCategories = "Categories: makeup, beauty-tools, mother-care, pet-care"
	placeholderFlashSale  = "No active flash sale currently."
	placeholderStats      = "Website statistics are being loaded."
)

// maxDescriptionChars bounds product descriptions in the prompt.
const maxDescriptionChars = 50

// buildSystemPrompt renders the mode-specific system instruction from a
// context snapshot. Pure and total: absent fields render as their
// placeholder sentence.
func buildSystemPrompt(mode datatypes.SessionMode, bc BusinessContext) string {
	if mode == datatypes.ModeAdmin {
		return adminSystemPrompt(bc)
	}
	return customerSystemPrompt(bc)
}

func customerSystemPrompt(bc BusinessContext) string {
	products := placeholderProducts
	if len(bc.Products) > 0 {
		summaries := make([]string, 0, len(bc.Products))
		for _, p := range bc.Products {
			desc := p.Description
			// Truncate on rune boundaries so multi-byte descriptions
			// never feed invalid UTF-8 into the prompt.
			if runes := []rune(desc); len(runes) > maxDescriptionChars {
				desc = string(runes[:maxDescriptionChars])
			}
			summaries = append(summaries, fmt.Sprintf("%s ($%.2f) - %s", p.Name, p.Price, desc))
		}
		products = fmt.Sprintf("Available products (%d total): %s",
			len(bc.Products), strings.Join(summaries, ", "))
	}

	categories := placeholderCategories
	if len(bc.Categories) > 0 {
		names := make([]string, 0, len(bc.Categories))
		for _, c := range bc.Categories {
			names = append(names, c.Name)
		}
		categories = "Categories: " + strings.Join(names, ", ")
	}

	flashSale := placeholderFlashSale
	if bc.FlashSale != nil {
		flashSale = fmt.Sprintf("Current flash sale: %s with %d%% discount",
			bc.FlashSale.Name, bc.FlashSale.DiscountPercentage)
	}

	return fmt.Sprintf(`You are Violet, the friendly AI assistant for Shop&Glow, a premium curated marketplace for beauty, mother care, and pet grooming products.

Your personality: warm, concise, and knowledgeable about products and brands. You guide customers to the right products, answer questions about shipping, returns, and policies, and mention current promotions when relevant.

Current Shop&Glow information:
%s

%s

%s

Shop&Glow runs a curated marketplace with at most two premium partners per category and a commission-based partner system. Emphasize quality and the exclusive partner selection when it helps the customer decide. Keep responses short and conversational.`,
		products, categories, flashSale)
}

func adminSystemPrompt(bc BusinessContext) string {
	stats := placeholderStats
	if bc.Stats != nil {
		stats = fmt.Sprintf("Current stats: %d products, %d partners, %d active flash sales",
			bc.Stats.TotalProducts, bc.Stats.TotalPartners, bc.Stats.ActiveFlashSales)
	}

	return fmt.Sprintf(`You are Violet in ADMIN MODE for the Shop&Glow marketplace. You are the administrative assistant to the site owner, providing business intelligence, technical support, and management insight.

You analyze website performance, inventory and pricing, partner performance and commissions, and customer behavior, and you propose specific, actionable recommendations with relevant metrics when available.

Current Shop&Glow status:
%s

Communicate in a professional, analytical, data-driven tone and focus on business impact.`,
		stats)
}
