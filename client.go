// Package dgraphorm maps typed domain objects to the flat, uid-keyed
// node records a Dgraph cluster returns, and derives the cluster's
// schema text from the same metadata registry.
//
// Types are declared once at startup, either with the fluent builders:
//
//	schema.AddProperty("Person", field.UID("id").Descriptor())
//	schema.AddProperty("Person", field.String("name").Index("hash").Descriptor())
//	schema.AddPredicate("Person", predicate.To("works", "Work").Descriptor())
//
// or from a YAML document via the schema/load package. A Client then
// ties the registry to a database driver:
//
//	drv, err := dgraph.Open("localhost:9080")
//	client, err := dgraphorm.NewClient(drv)
//	err = client.Alter(ctx)                  // push the derived schema
//	people, err := client.Query(ctx, "Person", q, vars)
//	err = client.Save(ctx, people...)        // write post-load diffs
package dgraphorm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/singleflight"

	"github.com/andrejpavlovic/dgraph-orm/dialect"
	"github.com/andrejpavlovic/dgraph-orm/graph"
	"github.com/andrejpavlovic/dgraph-orm/schema"
)

// Client ties a schema registry, an object mapper and a database driver
// together. The zero value is not usable; construct with NewClient.
type Client struct {
	driver   dialect.Driver
	registry *schema.Registry
	mapper   *graph.Mapper
	cache    Cache
	cacheTTL time.Duration
	sf       singleflight.Group
	log      func(...any)
	debug    bool
}

// NewClient returns a client over the given driver. A nil driver is
// allowed for offline use (schema building and mapping only); driver
// operations then fail with ErrNoDriver.
func NewClient(d dialect.Driver, opts ...Option) (*Client, error) {
	c := &Client{
		driver:   d,
		registry: schema.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.log == nil {
		c.log = log.Println
	}
	if c.debug && c.driver != nil {
		c.driver = dialect.DebugWithLog(c.driver, c.log)
	}
	c.mapper = graph.NewMapper(c.registry)
	if c.debug {
		c.mapper.SetLog(c.log)
	}
	return c, nil
}

// Registry returns the client's schema registry.
func (c *Client) Registry() *schema.Registry {
	return c.registry
}

// Mapper returns the client's object mapper.
func (c *Client) Mapper() *graph.Mapper {
	return c.mapper
}

// Schema returns the schema text derived from the registry.
func (c *Client) Schema() string {
	return schema.Build(c.registry)
}

// Alter derives the schema text and submits it to the database's
// alteration endpoint.
func (c *Client) Alter(ctx context.Context) error {
	if c.driver == nil {
		return ErrNoDriver
	}
	return c.driver.Alter(ctx, schema.Build(c.registry))
}

// Query runs the given query, expands the uid index over the result
// tree and transforms the result block into instances of the named
// type. Identical concurrent queries are coalesced; when a cache is
// configured the raw result is served from it within the TTL.
func (c *Client) Query(ctx context.Context, typeName, query string, vars map[string]string) ([]*graph.Instance, error) {
	if c.driver == nil {
		return nil, ErrNoDriver
	}
	data, err := c.fetch(ctx, typeName, query, vars)
	if err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}
	roots, err := resultBlock(data)
	if err != nil {
		return nil, err
	}
	index := graph.BuildIndex(roots)
	c.mapper.Expand(index, roots)
	return c.mapper.Transform(typeName, roots)
}

// fetch returns the raw JSON result for the query, deduplicating
// concurrent identical calls and consulting the cache when configured.
func (c *Client) fetch(ctx context.Context, typeName, query string, vars map[string]string) ([]byte, error) {
	key := CacheKey{Type: typeName, Query: query, Vars: flattenVars(vars)}.String()
	v, err, _ := c.sf.Do(key, func() (any, error) {
		if c.cache != nil {
			if hit, err := c.cacheGet(ctx, key); err == nil && hit != nil {
				return hit, nil
			}
		}
		data, err := c.driver.Query(ctx, query, vars)
		if err != nil {
			return nil, err
		}
		if c.cache != nil {
			c.cachePut(ctx, key, data)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// cachedResult is the msgpack envelope stored per cache key.
type cachedResult struct {
	JSON []byte    `msgpack:"json"`
	At   time.Time `msgpack:"at"`
}

func (c *Client) cacheGet(ctx context.Context, key string) ([]byte, error) {
	raw, err := c.cache.Get(ctx, key)
	if err != nil || raw == nil {
		return nil, err
	}
	var res cachedResult
	if err := msgpack.Unmarshal(raw, &res); err != nil {
		// Stale or foreign entry; drop it and fall through to the driver.
		_ = c.cache.Delete(ctx, key)
		return nil, nil
	}
	return res.JSON, nil
}

func (c *Client) cachePut(ctx context.Context, key string, data []byte) {
	raw, err := msgpack.Marshal(cachedResult{JSON: data, At: time.Now()})
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, raw, c.cacheTTL); err != nil && c.debug {
		c.log(fmt.Sprintf("cache.Set %q failed: %v", key, err))
	}
}

// Save builds a mutation from the post-load diffs of the given
// instances, submits it, assigns database uids to newly created
// instances and purges every saved instance's diff state.
func (c *Client) Save(ctx context.Context, insts ...*graph.Instance) error {
	if c.driver == nil {
		return ErrNoDriver
	}
	mu, err := c.mapper.BuildMutation(insts...)
	if err != nil {
		return err
	}
	if mu.Empty() {
		return nil
	}
	resp, err := c.driver.Mutate(ctx, mu.SetJSON)
	if err != nil {
		return err
	}
	visited := make(map[*graph.Instance]struct{})
	for _, inst := range insts {
		c.settle(inst, resp, visited)
	}
	return nil
}

// settle assigns the database-issued uid to a saved instance and purges
// its diff state, recursing through its predicate collections.
func (c *Client) settle(inst *graph.Instance, resp *dialect.Response, visited map[*graph.Instance]struct{}) {
	if _, ok := visited[inst]; ok {
		return
	}
	visited[inst] = struct{}{}
	if inst.UID() == "" && inst.Blank() != "" {
		if uid, ok := resp.UIDs[inst.Blank()]; ok {
			inst.SetUID(uid)
		}
	}
	c.mapper.Purge(inst)
	for _, p := range inst.Type().Predicates {
		col, err := inst.Predicate(p.Name)
		if err != nil {
			continue
		}
		for _, el := range col.Get() {
			if child, ok := el.(*graph.Instance); ok {
				c.settle(child, resp, visited)
			}
		}
	}
}

// Close closes the underlying driver.
func (c *Client) Close() error {
	if c.driver == nil {
		return nil
	}
	return c.driver.Close()
}

// resultBlock extracts the result array from a query response: the "q"
// block when present, otherwise the response's single block.
func resultBlock(data []byte) ([]any, error) {
	var envelope map[string]any
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("dgraphorm: decode query result: %w", err)
	}
	pick := func(v any) ([]any, error) {
		arr, ok := v.([]any)
		if !ok {
			return nil, ErrEmptyResult
		}
		return arr, nil
	}
	if v, ok := envelope["q"]; ok {
		return pick(v)
	}
	if len(envelope) == 1 {
		for _, v := range envelope {
			return pick(v)
		}
	}
	return nil, ErrEmptyResult
}

// flattenVars renders query variables as a stable string for cache
// keys.
func flattenVars(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(vars[k])
		b.WriteString(";")
	}
	return b.String()
}
