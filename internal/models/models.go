package models

// This file provides a central import point for all models
// and helper functions shared across them

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// AllModels returns all model types for GORM operations
// Note: Migrations are handled by golang-migrate, not GORM AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&Session{},
		&Token{},
		&TokenConsumption{},
		&AttendanceRecord{},
	}
}

// TokenIDLength is the hex length of generated token ids (128 bits of entropy).
const TokenIDLength = 32

// GenerateTokenID returns a cryptographically random token identifier.
// Sequential ids would let an attacker enumerate valid tokens, so the id must
// come from crypto/rand.
func GenerateTokenID() (string, error) {
	bytes := make([]byte, TokenIDLength/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate token id: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
