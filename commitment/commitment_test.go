package commitment

import (
	"crypto/rand"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitRoundTrip(t *testing.T) {
	bidder, err := address.NewIDAddress(100)
	require.NoError(t, err)

	for _, amount := range []uint64{0, 1, 150, 1 << 40, ^uint64(0)} {
		secret, err := NewSecret(rand.Reader)
		require.NoError(t, err)

		c := Commit(amount, secret, bidder)
		assert.True(t, Verify(amount, secret, bidder, c))
	}
}

func TestCommitBinding(t *testing.T) {
	bidder, err := address.NewIDAddress(100)
	require.NoError(t, err)
	secret, err := NewSecret(rand.Reader)
	require.NoError(t, err)

	c1 := Commit(150, secret, bidder)
	c2 := Commit(151, secret, bidder)
	assert.NotEqual(t, c1, c2)

	assert.False(t, Verify(151, secret, bidder, c1))

	var wrongSecret Secret
	copy(wrongSecret[:], secret[:])
	wrongSecret[0] ^= 1
	assert.False(t, Verify(150, wrongSecret, bidder, c1))
}

func TestCommitBoundToBidder(t *testing.T) {
	b1, err := address.NewIDAddress(100)
	require.NoError(t, err)
	b2, err := address.NewIDAddress(101)
	require.NoError(t, err)
	secret, err := NewSecret(rand.Reader)
	require.NoError(t, err)

	c := Commit(150, secret, b1)
	assert.False(t, Verify(150, secret, b2, c))
}

func TestParseSecret(t *testing.T) {
	_, err := ParseSecret(make([]byte, 31))
	assert.ErrorIs(t, err, ErrInvalidSecretLength)
	_, err = ParseSecret(make([]byte, 33))
	assert.ErrorIs(t, err, ErrInvalidSecretLength)

	raw := make([]byte, SecretLen)
	raw[7] = 0xaa
	s, err := ParseSecret(raw)
	require.NoError(t, err)
	assert.EqualValues(t, 0xaa, s[7])
}

func TestCommitmentText(t *testing.T) {
	bidder, err := address.NewIDAddress(100)
	require.NoError(t, err)
	secret, err := NewSecret(rand.Reader)
	require.NoError(t, err)

	c := Commit(42, secret, bidder)
	txt, err := c.MarshalText()
	require.NoError(t, err)

	var back Commitment
	require.NoError(t, back.UnmarshalText(txt))
	assert.Equal(t, c, back)

	assert.Error(t, back.UnmarshalText([]byte("zz")))
	assert.Error(t, back.UnmarshalText([]byte("abcd")))
}
