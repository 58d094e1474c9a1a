package database

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// dialect holds what differs between the supported drivers. All of them use
// "?" placeholders.
type dialect struct {
	name  string
	quote byte
	dsn   func(Options) string
	// setup runs once on the session right after connecting.
	setup func(Options) []string
}

var dialects = map[string]dialect{
	DriverMySQL: {
		name:  DriverMySQL,
		quote: '`',
		dsn:   mysqlDSN,
		setup: func(o Options) []string {
			return []string{fmt.Sprintf("SET NAMES %s COLLATE %s", o.Charset, o.Collation)}
		},
	},
	DriverSQLite: {
		name:  DriverSQLite,
		quote: '"',
		dsn:   sqliteDSN,
		setup: func(Options) []string { return nil },
	},
}

// sqliteDSN keeps any parameters already present on a file: URI.
func sqliteDSN(o Options) string {
	sep := "?"
	if strings.Contains(o.Database, "?") {
		sep = "&"
	}
	return o.Database + sep + "_foreign_keys=on"
}

func mysqlDSN(o Options) string {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
	cfg.User = o.User
	cfg.Passwd = o.Password
	cfg.DBName = o.Database
	cfg.Collation = o.Collation
	cfg.Params = map[string]string{"charset": o.Charset}
	cfg.InterpolateParams = o.InterpolateParams
	cfg.Timeout = o.ConnectTimeout
	// Report matched rows, not changed rows, from UPDATE.
	cfg.ClientFoundRows = true
	return cfg.FormatDSN()
}

// QuoteIdentifier wraps name in delim, doubling every embedded delim so the
// name cannot terminate its quoted context.
func QuoteIdentifier(name string, delim byte) string {
	d := string(delim)
	return d + strings.ReplaceAll(name, d, d+d) + d
}

func (d dialect) ident(name string) string {
	return QuoteIdentifier(name, d.quote)
}

func (d dialect) selectSQL(table, condition string) string {
	return withWhere("SELECT * FROM "+d.ident(table), condition)
}

func (d dialect) deleteSQL(table, condition string) string {
	return withWhere("DELETE FROM "+d.ident(table), condition)
}

func (d dialect) insertSQL(table string, names []string) string {
	cols := make([]string, len(names))
	marks := make([]string, len(names))
	for i, n := range names {
		cols[i] = d.ident(n)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.ident(table), strings.Join(cols, ", "), strings.Join(marks, ", "))
}

func (d dialect) updateSQL(table string, names []string, condition string) string {
	sets := make([]string, len(names))
	for i, n := range names {
		sets[i] = d.ident(n) + " = ?"
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		d.ident(table), strings.Join(sets, ", "), condition)
}

func withWhere(stmt, condition string) string {
	if condition == "" {
		return stmt
	}
	return stmt + " WHERE " + condition
}
