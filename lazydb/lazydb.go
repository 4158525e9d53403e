// lazydb applies lazycell to the most common want for a lazy singleton: a
// process-wide database handle that is opened on first use and shared by
// every caller afterwards.
//
// Handle wraps database/sql; Pool wraps a pgx v5 connection pool. Opening
// either one does not dial the server (both sql.Open and pgxpool.New defer
// connecting), so declaring a package-level Handle or Pool costs nothing at
// program start, and a failure to construct one poisons it permanently
// instead of being retried on every request.
package lazydb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peterldowns/lazycell"
)

// Config contains the details needed to connect to a postgres
// server/database.
type Config struct {
	// DriverName is the name of a registered database/sql driver, e.g. "pgx"
	// or "postgres". Only used by Handle; Pool always speaks pgx.
	DriverName string
	Host       string
	Port       string
	User       string
	Password   string
	Database   string
	Options    string
}

// URL returns a postgres connection string.
func (c Config) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.Options,
	)
}

// Handle is a lazily opened *sql.DB. Every caller of Get receives the same
// underlying handle; database/sql does its own per-connection pooling on top.
type Handle struct {
	conf Config
	db   *lazycell.Value[*sql.DB]
}

// NewHandle returns a Handle that opens its database on first use. The driver
// named by conf.DriverName must be registered by the caller, usually with a
// blank import:
//
//	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
func NewHandle(conf Config) *Handle {
	return &Handle{
		conf: conf,
		db: lazycell.NewValue(func() (*sql.DB, error) {
			return sql.Open(conf.DriverName, conf.URL())
		}),
	}
}

// Get returns the shared database handle, opening it on the first call from
// any goroutine. If opening fails, every present and future caller receives
// the same error and opening is not retried.
func (h *Handle) Get() (*sql.DB, error) {
	return h.db.Load()
}

// Initialize opens the handle now instead of on first use. Idempotent.
func (h *Handle) Initialize() error {
	return h.db.Initialize()
}

// Config returns the configuration the handle was created with.
func (h *Handle) Config() Config {
	return h.conf
}

// Pool is a lazily constructed pgx connection pool.
type Pool struct {
	conf Config
	pool *lazycell.Value[*pgxpool.Pool]
}

// NewPool returns a Pool that parses its config and constructs the underlying
// pgxpool on first use. Connections are dialed later, on first acquire.
func NewPool(conf Config) *Pool {
	return &Pool{
		conf: conf,
		pool: lazycell.NewValue(func() (*pgxpool.Pool, error) {
			return pgxpool.New(context.Background(), conf.URL())
		}),
	}
}

// Get returns the shared pool, constructing it on the first call from any
// goroutine. A config that fails to parse poisons the Pool permanently.
func (p *Pool) Get() (*pgxpool.Pool, error) {
	return p.pool.Load()
}

// Initialize constructs the pool now instead of on first use. Idempotent.
func (p *Pool) Initialize() error {
	return p.pool.Initialize()
}

// Config returns the configuration the pool was created with.
func (p *Pool) Config() Config {
	return p.conf
}
