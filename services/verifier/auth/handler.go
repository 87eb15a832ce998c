// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerRequest is the JSON body of POST /api/auth/register.
type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler handles POST /api/auth/register.
//
// Unlike the verification endpoints this route uses conventional HTTP
// status codes: 400 on a bad payload or a duplicate email, 500 on a
// storage failure.
func RegisterHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid registration payload"})
			return
		}

		err := store.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if errors.Is(err, ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "User already exists"})
			return
		}
		if err != nil {
			slog.Error("Account registration failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Registration failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User registered successfully"})
	}
}
