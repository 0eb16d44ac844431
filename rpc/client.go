package rpc

import (
	"context"
	"fmt"
	"net/http"

	"github.com/filecoin-project/go-jsonrpc"
	"github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"

	"github.com/ipfs-force-community/vbdesk/api"
)

// NewVBDeskRPC dials a running desk at the given multiaddress.
func NewVBDeskRPC(ctx context.Context, listenAddress string, requestHeader http.Header) (api.VBDesk, jsonrpc.ClientCloser, error) {
	addr, err := multiaddr.NewMultiaddr(listenAddress)
	if err != nil {
		return nil, nil, err
	}
	_, hostPort, err := manet.DialArgs(addr)
	if err != nil {
		return nil, nil, err
	}

	var res api.VBDeskStruct
	closer, err := jsonrpc.NewMergeClient(ctx, fmt.Sprintf("http://%s/rpc/v0", hostPort), "VBDesk",
		[]interface{}{&res.Internal}, requestHeader)
	if err != nil {
		return nil, nil, err
	}
	return &res, closer, nil
}
