package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"query-gateway/validator"
)

// Options are the connection settings fixed at open time.
type Options struct {
	Driver   string `json:"driver" validate:"required,sqldriver"`
	Host     string `json:"host" validate:"required_if=Driver mysql"`
	Port     int    `json:"port" validate:"gte=0,lte=65535"`
	Database string `json:"database" validate:"required"`
	User     string `json:"user"`
	Password string `json:"-"`

	// Charset and Collation are spliced into SET NAMES, so only plain names
	// are accepted.
	Charset   string `json:"charset" validate:"required,sqlname"`
	Collation string `json:"collation" validate:"required,sqlname"`

	// InterpolateParams enables client-side placeholder substitution. Off by
	// default, so every statement is prepared on the server.
	InterpolateParams bool `json:"interpolateParams"`

	// ConnectTimeout bounds connecting and session setup only.
	ConnectTimeout time.Duration `json:"connectTimeout"`

	Logger *slog.Logger `json:"-" validate:"-"`
}

// DefaultOptions returns the settings the gateway uses when a field is left
// zero.
func DefaultOptions() Options {
	return Options{
		Driver:         DriverMySQL,
		Host:           "127.0.0.1",
		Port:           3306,
		Charset:        "utf8mb4",
		Collation:      "utf8mb4_unicode_ci",
		ConnectTimeout: 10 * time.Second,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Driver == "" {
		o.Driver = def.Driver
	}
	if o.Host == "" {
		o.Host = def.Host
	}
	if o.Port == 0 {
		o.Port = def.Port
	}
	if o.Charset == "" {
		o.Charset = def.Charset
	}
	if o.Collation == "" {
		o.Collation = def.Collation
	}
	if o.ConnectTimeout == 0 {
		o.ConnectTimeout = def.ConnectTimeout
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// conn is the slice of *sql.Conn the gateway uses.
type conn interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Close() error
}

// Gateway owns one database session and turns CRUD requests into
// parameterized SQL. It is meant for sequential use.
type Gateway struct {
	db      *sql.DB
	sqlConn *sql.Conn
	conn    conn
	dialect dialect
	logger  *slog.Logger
}

// Open connects with opts and prepares the session. Any failure, including
// invalid options, is reported as ErrConnection.
func Open(ctx context.Context, opts Options) (*Gateway, error) {
	opts = opts.withDefaults()

	if err := validator.New().Validate(opts); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	d, ok := dialects[opts.Driver]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported driver %q", ErrConnection, opts.Driver)
	}

	db, err := sql.Open(d.name, d.dsn(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	// The gateway holds a single session for its whole lifetime.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	c, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	if err := c.PingContext(ctx); err != nil {
		c.Close()
		db.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	for _, stmt := range d.setup(opts) {
		if _, err := c.ExecContext(ctx, stmt); err != nil {
			c.Close()
			db.Close()
			return nil, fmt.Errorf("%w: %w", ErrConnection, err)
		}
	}

	g := newGateway(c, d, opts.Logger)
	g.db = db
	g.sqlConn = c
	g.logger.Info("database session opened",
		"host", opts.Host, "database", opts.Database, "user", opts.User)
	return g, nil
}

func newGateway(c conn, d dialect, logger *slog.Logger) *Gateway {
	return &Gateway{
		conn:    c,
		dialect: d,
		logger:  logger.With("session_id", uuid.NewString(), "driver", d.name),
	}
}

// Conn exposes the underlying session for callers that need the driver
// directly.
func (g *Gateway) Conn() *sql.Conn {
	return g.sqlConn
}

// EscapeIdentifier quotes a table or column name with the driver's
// identifier delimiter.
func (g *Gateway) EscapeIdentifier(name string) string {
	return g.dialect.ident(name)
}

// RawQuery runs caller-supplied SQL with positional parameters and returns
// every result row. The SQL is not checked in any way.
func (g *Gateway) RawQuery(ctx context.Context, query string, params ...Value) ([]Row, error) {
	start := time.Now()
	rows, err := g.query(ctx, query, params)
	if err != nil {
		return nil, g.fail(ctx, ErrQuery, query, err)
	}
	g.logger.LogAttrs(ctx, slog.LevelDebug, "query executed",
		slog.String("sql", query),
		slog.Int("args", len(params)),
		slog.Int("rows", len(rows)),
		slog.Duration("duration", time.Since(start)),
	)
	return rows, nil
}

// Select returns the rows of table matching condition, or all rows when
// condition is empty. condition is raw SQL; params bind its placeholders.
func (g *Gateway) Select(ctx context.Context, table, condition string, params ...Value) ([]Row, error) {
	return g.RawQuery(ctx, g.dialect.selectSQL(table, condition), params...)
}

// Insert adds one row and returns its generated id.
func (g *Gateway) Insert(ctx context.Context, table string, cols *Columns) (int64, error) {
	if cols.Len() == 0 {
		return 0, fmt.Errorf("%w: %w", ErrInsert, ErrNoColumns)
	}
	query := g.dialect.insertSQL(table, cols.names)
	res, err := g.exec(ctx, query, cols.values)
	if err != nil {
		return 0, g.fail(ctx, ErrInsert, query, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, g.fail(ctx, ErrInsert, query, err)
	}
	return id, nil
}

// Update sets cols on the rows matching condition and returns how many rows
// matched. Column values bind before params. An empty condition is rejected
// rather than turned into a full-table update.
func (g *Gateway) Update(ctx context.Context, table string, cols *Columns, condition string, params ...Value) (int64, error) {
	if cols.Len() == 0 {
		return 0, fmt.Errorf("%w: %w", ErrUpdate, ErrNoColumns)
	}
	if condition == "" {
		return 0, fmt.Errorf("%w: %w", ErrUpdate, ErrEmptyCondition)
	}
	query := g.dialect.updateSQL(table, cols.names, condition)
	args := make([]Value, 0, cols.Len()+len(params))
	args = append(args, cols.values...)
	args = append(args, params...)
	return g.affected(ctx, ErrUpdate, query, args)
}

// Delete removes the rows matching condition, or every row when condition is
// empty, and returns how many were removed.
func (g *Gateway) Delete(ctx context.Context, table, condition string, params ...Value) (int64, error) {
	return g.affected(ctx, ErrDelete, g.dialect.deleteSQL(table, condition), params)
}

// Exec runs a caller-supplied statement that returns no rows.
func (g *Gateway) Exec(ctx context.Context, query string, params ...Value) (sql.Result, error) {
	res, err := g.exec(ctx, query, params)
	if err != nil {
		return nil, g.fail(ctx, ErrQuery, query, err)
	}
	return res, nil
}

// Close releases the session. The gateway cannot be used afterwards.
func (g *Gateway) Close() error {
	err := g.conn.Close()
	if g.db != nil {
		err = errors.Join(err, g.db.Close())
	}
	return err
}

func (g *Gateway) affected(ctx context.Context, kind error, query string, params []Value) (int64, error) {
	res, err := g.exec(ctx, query, params)
	if err != nil {
		return 0, g.fail(ctx, kind, query, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, g.fail(ctx, kind, query, err)
	}
	return n, nil
}

func (g *Gateway) query(ctx context.Context, query string, params []Value) (out []Row, err error) {
	rows, err := g.conn.QueryContext(ctx, query, bindArgs(params)...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return scanRows(rows)
}

func (g *Gateway) exec(ctx context.Context, query string, params []Value) (sql.Result, error) {
	start := time.Now()
	res, err := g.conn.ExecContext(ctx, query, bindArgs(params)...)
	if err != nil {
		return nil, err
	}
	g.logger.LogAttrs(ctx, slog.LevelDebug, "statement executed",
		slog.String("sql", query),
		slog.Int("args", len(params)),
		slog.Duration("duration", time.Since(start)),
	)
	return res, nil
}

func (g *Gateway) fail(ctx context.Context, kind error, query string, err error) error {
	g.logger.LogAttrs(ctx, slog.LevelError, kind.Error(),
		slog.String("sql", query),
		slog.String("error", err.Error()),
	)
	return fmt.Errorf("%w: %w", kind, err)
}

func bindArgs(params []Value) []any {
	args := make([]any, len(params))
	for i, p := range params {
		args[i] = p
	}
	return args
}
