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
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store over a SQLite catalog database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the catalog database and ensures the schema.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate catalog database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			category_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			price REAL NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category_slug TEXT NOT NULL,
			FOREIGN KEY (category_slug) REFERENCES categories(slug)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_slug)`,
		`CREATE TABLE IF NOT EXISTS partners (
			partner_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			category_slug TEXT NOT NULL,
			commission_rate REAL NOT NULL DEFAULT 0.08,
			FOREIGN KEY (category_slug) REFERENCES categories(slug)
		)`,
		`CREATE TABLE IF NOT EXISTS flash_sales (
			flash_sale_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			discount_percentage INTEGER NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 0,
			ends_at DATETIME NOT NULL
		)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Products implements Store.
func (s *SQLiteStore) Products(ctx context.Context) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT product_id, name, price, description, category_slug
		 FROM products ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Category); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Categories implements Store.
func (s *SQLiteStore) Categories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category_id, name, slug FROM categories ORDER BY category_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ActiveFlashSale implements Store. Returns nil when no sale is active.
func (s *SQLiteStore) ActiveFlashSale(ctx context.Context) (*FlashSale, error) {
	var fs FlashSale
	var endsAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT flash_sale_id, name, discount_percentage, ends_at
		 FROM flash_sales
		 WHERE is_active = 1 AND ends_at > CURRENT_TIMESTAMP
		 ORDER BY ends_at LIMIT 1`).
		Scan(&fs.ID, &fs.Name, &fs.DiscountPercentage, &endsAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query active flash sale: %w", err)
	}
	if t, perr := time.Parse("2006-01-02 15:04:05", endsAt); perr == nil {
		fs.EndsAt = t
	}
	return &fs, nil
}

// Stats implements Store.
func (s *SQLiteStore) Stats(ctx context.Context) (*WebsiteStats, error) {
	stats := &WebsiteStats{}
	err := s.db.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM partners),
			(SELECT COUNT(*) FROM flash_sales
			 WHERE is_active = 1 AND ends_at > CURRENT_TIMESTAMP)`).
		Scan(&stats.TotalProducts, &stats.TotalPartners, &stats.ActiveFlashSales)
	if err != nil {
		return nil, fmt.Errorf("failed to query website stats: %w", err)
	}
	return stats, nil
}
