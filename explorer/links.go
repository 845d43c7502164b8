package explorer

import (
	"fmt"

	"github.com/qchain/sdk-go/types"
)

// Kind selects which explorer page a link points at.
type Kind string

const (
	KindTransaction Kind = "transaction"
	KindAsset       Kind = "asset"
)

// viewer hosts per network, in preference order. Two independent viewers per
// network so a timed-out user still has somewhere to look when one is down.
var viewers = map[types.Network][]string{
	types.NetworkMainNet: {"https://allo.info", "https://explorer.perawallet.app"},
	types.NetworkTestNet: {"https://testnet.explorer.perawallet.app", "https://app.dappflow.org/explorer"},
	types.NetworkBetaNet: {"https://betanet.explorer.perawallet.app", "https://app.dappflow.org/explorer"},
}

// Links maps an id to one or more human-viewable URLs. Pure function, no
// network calls. Unknown networks fall back to testnet viewers.
func Links(id string, kind Kind, network types.Network) []string {
	hosts, ok := viewers[network]
	if !ok {
		hosts = viewers[types.NetworkTestNet]
	}
	var segment string
	switch kind {
	case KindAsset:
		segment = "asset"
	default:
		segment = "tx"
	}
	links := make([]string, 0, len(hosts))
	for _, h := range hosts {
		links = append(links, fmt.Sprintf("%s/%s/%s", h, segment, id))
	}
	return links
}

// TxLinks is a convenience wrapper matching the monitor's LinkFn shape.
func TxLinks(network types.Network) func(txid string) []string {
	return func(txid string) []string {
		return Links(txid, KindTransaction, network)
	}
}
