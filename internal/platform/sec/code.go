// Copyright (c) 2026 Critica. All rights reserved.

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ConfirmationCodeLength is the byte length of the random confirmation code
// emailed at signup. 16 bytes (32 hex chars) keeps the code copy-pasteable
// while staying far beyond guessing range for its short lifetime.
const ConfirmationCodeLength = 16

// GenerateConfirmationCode returns a new random confirmation code as a hex string.
func GenerateConfirmationCode() (string, error) {
	buf := make([]byte, ConfirmationCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate confirmation code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashConfirmationCode hashes a confirmation code for at-rest storage.
//
// Codes are credentials: like passwords, only the bcrypt digest is persisted.
func HashConfirmationCode(code string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash confirmation code: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckConfirmationCode compares a plain confirmation code with its stored hash.
func CheckConfirmationCode(code, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(code))
	return err == nil
}
