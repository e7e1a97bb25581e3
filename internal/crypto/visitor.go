package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"net"
	"strings"

	"golang.org/x/crypto/blake2b"

	"flashysurf/internal/domain"
)

const (
	// VisitorIDBytes is the digest size behind a visitor id (32 hex chars).
	VisitorIDBytes = 16
	// SaltBytes is the size of salts produced by NewSalt.
	SaltBytes = 32
)

// VisitorID returns the pseudonymous id of the client at remoteAddr using
// userAgent. The port of remoteAddr is ignored so one browser keeps its id
// across connections.
func VisitorID(salt, remoteAddr, userAgent string) domain.DistinctID {
	key := blake2b.Sum256([]byte(salt))
	defer Wipe(key[:])

	h, err := blake2b.New(VisitorIDBytes, key[:])
	if err != nil {
		// Only reachable with an invalid size or key length.
		panic(err)
	}
	h.Write([]byte(clientHost(remoteAddr)))
	h.Write([]byte{0})
	h.Write([]byte(strings.TrimSpace(userAgent)))
	return domain.DistinctID(hex.EncodeToString(h.Sum(nil)))
}

// NewSalt returns a random hex salt for VisitorID.
func NewSalt() (string, error) {
	b := make([]byte, SaltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	defer Wipe(b)
	return hex.EncodeToString(b), nil
}

func clientHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.Trim(addr, "[]")
}
