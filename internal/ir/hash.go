package ir

import (
	"crypto/sha256"
	"encoding/hex"
)

// DomainProgram prefixes program hashes. The version suffix allows a future
// change of serialization without colliding with old hashes.
const DomainProgram = "bfi/program/v1"

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ProgramHash computes a content-addressed identity for a program.
// Sources differing only in comments or whitespace hash identically.
func ProgramHash(p Program) string {
	return hashWithDomain(DomainProgram, []byte(p.String()))
}
