package dgraphorm

import (
	"time"

	"github.com/andrejpavlovic/dgraph-orm/schema"
)

// Option configures a Client.
type Option func(*Client) error

// WithRegistry sets the schema registry the client maps against.
// Defaults to the process-wide registry.
func WithRegistry(r *schema.Registry) Option {
	return func(c *Client) error {
		if r == nil {
			return schema.NewConfigurationError("", "", "registry cannot be nil")
		}
		c.registry = r
		return nil
	}
}

// WithCache enables query-result caching through the given cache.
func WithCache(cache Cache) Option {
	return func(c *Client) error {
		c.cache = cache
		return nil
	}
}

// WithCacheTTL sets the TTL applied to cached query results. Zero means
// no expiry.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) error {
		c.cacheTTL = ttl
		return nil
	}
}

// WithLogger sets the callback receiving pre-formatted diagnostic
// strings. Defaults to the standard library logger when debug is on.
func WithLogger(log func(...any)) Option {
	return func(c *Client) error {
		c.log = log
		return nil
	}
}

// WithDebug wraps the driver so every Alter, Query and Mutate is
// reported to the logger before it runs.
func WithDebug() Option {
	return func(c *Client) error {
		c.debug = true
		return nil
	}
}
