// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrInvalidAdminKey   = errors.New("invalid admin key")
	ErrInvalidAgentToken = errors.New("invalid agent token")
)

// Key scopes keep an admin key from ever matching an agent token.
const (
	scopeAdmin = "admin:"
	scopeAgent = "agent:"
)

// sign returns the URL-safe, unpadded HMAC-SHA256 of scope+subject.
func sign(scope, subject, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(scope))
	h.Write([]byte(subject))
	return strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
}

// GenerateAdminKey creates the admin key for an election.
// This is deterministic and verifiable
func GenerateAdminKey(electionID, salt string) string {
	return sign(scopeAdmin, electionID, salt)
}

// ValidateAdminKey checks if the provided admin key is valid for the election
func ValidateAdminKey(electionID, adminKey, salt string) error {
	expected := GenerateAdminKey(electionID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateAgentToken creates the token a field agent uses to submit for one
// polling unit.
func GenerateAgentToken(pollingUnit, salt string) string {
	return sign(scopeAgent, pollingUnit, salt)
}

// ValidateAgentToken checks the token against the polling unit it claims to
// submit for.
func ValidateAgentToken(pollingUnit, token, salt string) error {
	if token == "" {
		return ErrInvalidAgentToken
	}
	expected := GenerateAgentToken(pollingUnit, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidAgentToken
	}
	return nil
}
