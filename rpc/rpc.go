package rpc

import (
	"context"
	"net/http"

	"github.com/filecoin-project/go-jsonrpc"
	"github.com/gorilla/mux"
	logging "github.com/ipfs/go-log/v2"
	"github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"

	"github.com/ipfs-force-community/vbdesk/api"
	"github.com/ipfs-force-community/vbdesk/config"
)

var log = logging.Logger("rpc")

// ServeRPC exposes the desk over JSON-RPC on the configured multiaddress and
// blocks until the context is cancelled or the shutdown channel fires.
func ServeRPC(ctx context.Context, cfg *config.API, a api.VBDesk, shutdownCh <-chan struct{}) error {
	rpcServer := jsonrpc.NewServer()
	rpcServer.Register("VBDesk", a)

	mux := mux.NewRouter()
	mux.Handle("/rpc/v0", rpcServer)
	mux.PathPrefix("/").Handler(http.DefaultServeMux)

	srv := &http.Server{Handler: mux}

	go func() {
		select {
		case <-shutdownCh:
		case <-ctx.Done():
		}

		log.Warn("Shutting down...")
		if err := srv.Shutdown(context.TODO()); err != nil {
			log.Errorf("shutting down RPC server failed: %s", err)
		}
		log.Warn("Graceful shutdown successful")
	}()

	addr, err := multiaddr.NewMultiaddr(cfg.ListenAddress)
	if err != nil {
		return err
	}

	nl, err := manet.Listen(addr)
	if err != nil {
		return err
	}
	return srv.Serve(manet.NetListener(nl))
}
