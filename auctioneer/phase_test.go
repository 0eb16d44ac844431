package auctioneer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ipfs-force-community/vbdesk/types"
)

func TestPhase(t *testing.T) {
	a := &types.Auction{
		CommitDeadline: 1000,
		RevealDeadline: 2000,
	}

	assert.Equal(t, types.PhaseCommit, Phase(a, 0))
	assert.Equal(t, types.PhaseCommit, Phase(a, 999))
	assert.Equal(t, types.PhaseReveal, Phase(a, 1000))
	assert.Equal(t, types.PhaseReveal, Phase(a, 1999))
	assert.Equal(t, types.PhaseClosed, Phase(a, 2000))
	assert.Equal(t, types.PhaseClosed, Phase(a, 5000))
}
