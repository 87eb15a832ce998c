// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package auth provides the optional account store backing the
// /api/auth routes. The verifier runs without it (lightweight mode)
// when no database path is configured.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ErrUserExists reports a registration attempt with an email that is
// already taken.
var ErrUserExists = errors.New("user already exists")

// User is a registered account row. Passwords are stored only as bcrypt
// hashes.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

// Store wraps the SQLite-backed account database.
type Store struct {
	db *gorm.DB
}

// NewStore opens (or creates) the account database at path and migrates
// the schema.
func NewStore(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open the account database: %w", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate the account schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Register creates an account with a bcrypt-hashed password. Returns
// ErrUserExists when the email is already registered.
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&User{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for an existing account: %w", err)
	}
	if count > 0 {
		return ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash the password: %w", err)
	}

	user := User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create the account: %w", err)
	}
	return nil
}
