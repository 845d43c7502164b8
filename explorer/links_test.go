package explorer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qchain/sdk-go/types"
)

func TestLinksPerNetwork(t *testing.T) {
	for _, network := range []types.Network{types.NetworkMainNet, types.NetworkTestNet, types.NetworkBetaNet} {
		links := Links("TX1", KindTransaction, network)
		require.GreaterOrEqual(t, len(links), 2, "network %s", network)
		for _, l := range links {
			require.True(t, strings.HasSuffix(l, "/tx/TX1"), "link %s", l)
		}
	}
}

func TestAssetLinks(t *testing.T) {
	links := Links("777", KindAsset, types.NetworkTestNet)
	require.NotEmpty(t, links)
	for _, l := range links {
		require.True(t, strings.HasSuffix(l, "/asset/777"), "link %s", l)
	}
}

func TestUnknownNetworkFallsBackToTestnet(t *testing.T) {
	require.Equal(t, Links("TX1", KindTransaction, types.NetworkTestNet), Links("TX1", KindTransaction, types.Network("devnet")))
}

func TestTxLinksMatchesLinks(t *testing.T) {
	fn := TxLinks(types.NetworkMainNet)
	require.Equal(t, Links("TX1", KindTransaction, types.NetworkMainNet), fn("TX1"))
}
