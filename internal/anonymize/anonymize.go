// Package anonymize derives the pseudonymous identifiers and integrity
// digests used by the anonymous election ledger. Everything here is a pure
// function of its inputs plus the salts injected at construction; no I/O.
package anonymize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// VoterIDPrefixLen is how many hex characters of a voter hash are returned
// to the voter as their own reference. Short enough to be useless for
// correlation, long enough to be recognizable.
const VoterIDPrefixLen = 8

// Hasher derives voter and IP hashes. The salts are configuration, supplied
// once at startup, so tests can pin deterministic fixtures.
type Hasher struct {
	voterSalt string
	ipSalt    string
}

// NewHasher creates a Hasher with the given secret salts.
func NewHasher(voterSalt, ipSalt string) *Hasher {
	return &Hasher{voterSalt: voterSalt, ipSalt: ipSalt}
}

// VoterHash returns the pseudonymous voter identifier for one (user,
// position) pair: hex sha256 of "userID:positionID:salt". Deterministic, so
// the same voter always maps to the same hash for duplicate detection, and
// one-way, so the hash cannot be mapped back to the user without the salt.
func (h *Hasher) VoterHash(userID, positionID int) string {
	return hexDigest(fmt.Sprintf("%d:%d:%s", userID, positionID, h.voterSalt))
}

// IPHash returns a one-way digest of a client IP for abuse heuristics.
// Empty input yields empty output; the raw IP is never stored.
func (h *Hasher) IPHash(ip string) string {
	if ip == "" {
		return ""
	}
	return hexDigest(fmt.Sprintf("%s:%s", ip, h.ipSalt))
}

// Signature returns the integrity digest binding a vote's voter hash,
// candidate and timestamp: hex sha256 of "voterHash:candidateID:timestamp".
// It is a checksum, not a MAC: anyone holding the three inputs can recompute
// it. It guards stored votes against corruption, not against an adversary
// who can already rewrite the ledger.
func Signature(voterHash string, candidateID int, timestamp string) string {
	return hexDigest(fmt.Sprintf("%s:%d:%s", voterHash, candidateID, timestamp))
}

// VoterIDPrefix returns the truncated voter-hash prefix included in receipts.
func VoterIDPrefix(voterHash string) string {
	if len(voterHash) < VoterIDPrefixLen {
		return voterHash
	}
	return voterHash[:VoterIDPrefixLen]
}

func hexDigest(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
