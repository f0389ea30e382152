package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
	"unicode/utf8"
)

// Metadata describes an ingested document.
type Metadata struct {
	Filename   string   `json:"filename,omitempty"`
	Format     Format   `json:"format"`
	Timestamp  string   `json:"timestamp"` // RFC3339 format
	Hash       string   `json:"hash"`      // SHA256 hex digest of the cleaned text
	Characters int      `json:"characters"`
	Platform   Platform `json:"platform,omitempty"` // Job board detected in saved HTML
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content, filename string, format Format) *Metadata {
	return &Metadata{
		Filename:   filename,
		Format:     format,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       computeHash(content),
		Characters: utf8.RuneCountInString(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
