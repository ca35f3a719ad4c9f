// Package dialect defines the database driver boundary. The core never
// talks to a database directly: schema alteration, queries and
// mutations all go through a Driver, and the concrete dgraph
// implementation lives in the dialect/dgraph subpackage.
package dialect

import (
	"context"
	"fmt"
	"log"
)

// Dgraph is the dialect name of the Dgraph driver.
const Dgraph = "dgraph"

// Response is the dialect-neutral result of a mutation.
type Response struct {
	// JSON is the raw response payload, if any.
	JSON []byte
	// UIDs maps blank-node labels to the uids the database assigned.
	UIDs map[string]string
}

// Driver is the interface every database backend implements. The
// schema-alteration call is the core's sole asynchronous boundary; the
// driver awaits the outcome and the core does not inspect it beyond the
// returned error.
type Driver interface {
	// Alter submits schema text to the database's alteration endpoint.
	Alter(ctx context.Context, schema string) error
	// Query runs a read-only query with optional variables and returns
	// the raw JSON result.
	Query(ctx context.Context, query string, vars map[string]string) ([]byte, error)
	// Mutate submits a set-JSON mutation and commits it.
	Mutate(ctx context.Context, setJSON []byte) (*Response, error)
	// Close releases the underlying connection.
	Close() error
	// Dialect returns the driver's dialect name.
	Dialect() string
}

// DebugDriver is a driver decorator that forwards a pre-formatted line
// per operation to a log callback before delegating.
type DebugDriver struct {
	Driver
	log func(...any)
}

// Debug wraps a driver with the default stdlib logger.
func Debug(d Driver) *DebugDriver {
	return DebugWithLog(d, log.Println)
}

// DebugWithLog wraps a driver with a custom log callback.
func DebugWithLog(d Driver, logger func(...any)) *DebugDriver {
	return &DebugDriver{Driver: d, log: logger}
}

// Alter logs the schema text and delegates.
func (d *DebugDriver) Alter(ctx context.Context, schema string) error {
	d.log(fmt.Sprintf("driver.Alter: schema=%q", schema))
	return d.Driver.Alter(ctx, schema)
}

// Query logs the query and delegates.
func (d *DebugDriver) Query(ctx context.Context, query string, vars map[string]string) ([]byte, error) {
	d.log(fmt.Sprintf("driver.Query: query=%q vars=%v", query, vars))
	return d.Driver.Query(ctx, query, vars)
}

// Mutate logs the payload and delegates.
func (d *DebugDriver) Mutate(ctx context.Context, setJSON []byte) (*Response, error) {
	d.log(fmt.Sprintf("driver.Mutate: set=%s", setJSON))
	return d.Driver.Mutate(ctx, setJSON)
}
