// Package dgraph implements the dialect.Driver interface over the
// official dgo client.
package dgraph

import (
	"context"

	"github.com/dgraph-io/dgo/v240"
	"github.com/dgraph-io/dgo/v240/protos/api"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/andrejpavlovic/dgraph-orm/dialect"
)

// Driver is a dialect.Driver backed by a Dgraph cluster.
type Driver struct {
	client *dgo.Dgraph
	conn   *grpc.ClientConn
}

// Open dials the given Dgraph alpha address over an insecure grpc
// connection and returns a driver. Production setups needing TLS or
// auth should dial themselves and use NewDriver.
func Open(target string) (*Driver, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &Driver{
		client: dgo.NewDgraphClient(api.NewDgraphClient(conn)),
		conn:   conn,
	}, nil
}

// NewDriver wraps an already-dialed grpc connection.
func NewDriver(conn *grpc.ClientConn) *Driver {
	return &Driver{
		client: dgo.NewDgraphClient(api.NewDgraphClient(conn)),
		conn:   conn,
	}
}

// Client returns the underlying dgo client.
func (d *Driver) Client() *dgo.Dgraph {
	return d.client
}

// Alter submits schema text to the cluster's alteration endpoint.
func (d *Driver) Alter(ctx context.Context, schema string) error {
	return d.client.Alter(ctx, &api.Operation{Schema: schema})
}

// Query runs a read-only query and returns the raw JSON result.
func (d *Driver) Query(ctx context.Context, query string, vars map[string]string) ([]byte, error) {
	txn := d.client.NewReadOnlyTxn()
	defer txn.Discard(ctx)
	var (
		resp *api.Response
		err  error
	)
	if len(vars) > 0 {
		resp, err = txn.QueryWithVars(ctx, query, vars)
	} else {
		resp, err = txn.Query(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	return resp.Json, nil
}

// Mutate submits a set-JSON mutation and commits it.
func (d *Driver) Mutate(ctx context.Context, setJSON []byte) (*dialect.Response, error) {
	txn := d.client.NewTxn()
	resp, err := txn.Mutate(ctx, &api.Mutation{SetJson: setJSON, CommitNow: true})
	if err != nil {
		_ = txn.Discard(ctx)
		return nil, err
	}
	return &dialect.Response{JSON: resp.Json, UIDs: resp.Uids}, nil
}

// Close closes the grpc connection.
func (d *Driver) Close() error {
	if d.conn != nil {
		return d.conn.Close()
	}
	return nil
}

// Dialect returns the driver's dialect name.
func (d *Driver) Dialect() string {
	return dialect.Dgraph
}
