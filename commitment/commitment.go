// Package commitment implements the sealed-bid commitment codec: a bid amount
// is bound to a 32-byte secret and the bidder identity through a SHA-256 hash,
// published at commit time and checked again at reveal time.
package commitment

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"io"

	"github.com/filecoin-project/go-address"
)

// SecretLen is the only accepted secret size. Shorter secrets weaken hiding,
// longer ones would not round-trip through the fixed-width wire encoding.
const SecretLen = 32

var ErrInvalidSecretLength = errors.New("secret must be exactly 32 bytes")

// Secret is the random value a bidder keeps private between commit and
// reveal. Losing it forfeits the deposit, the engine keeps no copy.
type Secret [SecretLen]byte

// Commitment is the published hash binding a bidder to a hidden amount.
type Commitment [sha256.Size]byte

func (c Commitment) String() string {
	return hex.EncodeToString(c[:])
}

func (c Commitment) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Commitment) UnmarshalText(b []byte) error {
	raw, err := hex.DecodeString(string(b))
	if err != nil {
		return err
	}
	if len(raw) != sha256.Size {
		return errors.New("commitment must be exactly 32 bytes")
	}
	copy(c[:], raw)
	return nil
}

// NewSecret draws a fresh secret from r, typically crypto/rand.Reader.
func NewSecret(r io.Reader) (Secret, error) {
	var s Secret
	if _, err := io.ReadFull(r, s[:]); err != nil {
		return Secret{}, err
	}
	return s, nil
}

// ParseSecret validates the length before anything is hashed.
func ParseSecret(b []byte) (Secret, error) {
	if len(b) != SecretLen {
		return Secret{}, ErrInvalidSecretLength
	}
	var s Secret
	copy(s[:], b)
	return s, nil
}

// Commit hashes the fixed-width concatenation of the amount (8-byte
// little-endian), the secret and the bidder's byte encoding. Including the
// bidder prevents one bidder replaying another's commitment.
func Commit(amount uint64, secret Secret, bidder address.Address) Commitment {
	h := sha256.New()
	var amt [8]byte
	binary.LittleEndian.PutUint64(amt[:], amount)
	h.Write(amt[:])
	h.Write(secret[:])
	h.Write(bidder.Bytes())

	var c Commitment
	copy(c[:], h.Sum(nil))
	return c
}

// Verify recomputes the commitment and compares in constant time.
func Verify(amount uint64, secret Secret, bidder address.Address, c Commitment) bool {
	want := Commit(amount, secret, bidder)
	return subtle.ConstantTimeCompare(want[:], c[:]) == 1
}
