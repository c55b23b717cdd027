// file:artkv/servs/s_art/art_nats/embedded.go
package art_nats

import (
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// Embedded is an in-process NATS server with one client connection.
type Embedded struct {
	ns *server.Server
	nc *nats.Conn
}

// StartEmbedded starts a NATS server on host:port and connects to it. A
// port of -1 picks a free one.
func StartEmbedded(host string, port int) (*Embedded, error) {
	ns, err := server.NewServer(&server.Options{
		Host:   host,
		Port:   port,
		NoLog:  true,
		NoSigs: true,
	})
	if err != nil {
		return nil, fmt.Errorf("nats-server init: %w", err)
	}
	go ns.Start()

	if !ns.ReadyForConnections(5 * time.Second) {
		ns.Shutdown()
		return nil, errors.New("nats-server not ready")
	}

	nc, err := nats.Connect(ns.ClientURL())
	if err != nil {
		ns.Shutdown()
		return nil, fmt.Errorf("nats client connect: %w", err)
	}
	return &Embedded{ns: ns, nc: nc}, nil
}

func (e *Embedded) Conn() *nats.Conn { return e.nc }
func (e *Embedded) URL() string      { return e.ns.ClientURL() }

// Stop closes the connection and shuts the server down.
func (e *Embedded) Stop() {
	e.nc.Close()
	e.ns.Shutdown()
	e.ns.WaitForShutdown()
}
