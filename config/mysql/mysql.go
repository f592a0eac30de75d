package mysql // import "github.com/NYTimes/ajson/config/mysql"

import (
	"database/sql"
	"net"
	"net/url"
	"strconv"
	"time"
	// DefaultLocation must resolve in images without a zoneinfo database.
	_ "time/tzdata"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds the MySQL connection settings and the layout of the
// table the ajson records live in.
type Config struct {
	Host            string        `envconfig:"MYSQL_HOST_NAME"`
	Port            int           `envconfig:"MYSQL_PORT" default:"3306"`
	User            string        `envconfig:"MYSQL_USER"`
	Pw              string        `envconfig:"MYSQL_PW"`
	DBName          string        `envconfig:"MYSQL_DB_NAME"`
	Location        string        `envconfig:"MYSQL_LOCATION" default:"America/New_York"`
	ReadTimeout     time.Duration `envconfig:"MYSQL_READ_TIMEOUT"`
	WriteTimeout    time.Duration `envconfig:"MYSQL_WRITE_TIMEOUT"`
	AddtlDSNOptions string        `envconfig:"MYSQL_ADDTL_DSN_OPTIONS"`

	MaxOpenConns    int           `envconfig:"MYSQL_MAX_OPEN_CONNS" default:"4"`
	MaxIdleConns    int           `envconfig:"MYSQL_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"MYSQL_CONN_MAX_LIFETIME" default:"5m"`

	// Table holds the ajson records.
	Table string `envconfig:"MYSQL_TABLE" default:"ajson"`
	// UniqueKey1 adds a unique index on key1 when Table is created.
	UniqueKey1 bool `envconfig:"MYSQL_UNIQUE_KEY1"`
}

const (
	// DefaultLocation is used when Location is empty.
	DefaultLocation = "America/New_York"
	// DefaultMySQLPort is used when Port is zero.
	DefaultMySQLPort = 3306
	// DefaultTable is used when Table is empty.
	DefaultTable = "ajson"
)

// DriverConfig translates the settings into a go-sql-driver config.
// Times are parsed into Location.
func (m *Config) DriverConfig() (*gomysql.Config, error) {
	port := m.Port
	if port == 0 {
		port = DefaultMySQLPort
	}
	location := m.Location
	if location == "" {
		location = DefaultLocation
	}
	loc, err := time.LoadLocation(location)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid mysql location %q", location)
	}
	opts, err := url.ParseQuery(m.AddtlDSNOptions)
	if err != nil {
		return nil, errors.Wrap(err, "invalid mysql DSN options")
	}

	dc := gomysql.NewConfig()
	dc.User = m.User
	dc.Passwd = m.Pw
	dc.Net = "tcp"
	dc.Addr = net.JoinHostPort(m.Host, strconv.Itoa(port))
	dc.DBName = m.DBName
	dc.Loc = loc
	dc.ParseTime = true
	dc.ReadTimeout = m.ReadTimeout
	dc.WriteTimeout = m.WriteTimeout
	if len(opts) > 0 {
		dc.Params = make(map[string]string, len(opts))
		for k := range opts {
			dc.Params[k] = opts.Get(k)
		}
	}
	return dc, nil
}

// DSN returns the connection string for the current settings.
func (m *Config) DSN() (string, error) {
	dc, err := m.DriverConfig()
	if err != nil {
		return "", err
	}
	return dc.FormatDSN(), nil
}

// TableName returns Table, or DefaultTable when it is unset.
func (m *Config) TableName() string {
	if m.Table == "" {
		return DefaultTable
	}
	return m.Table
}

// DB opens a connection pool sized by MaxOpenConns, MaxIdleConns and
// ConnMaxLifetime. No connection is made until the pool is used.
func (m *Config) DB() (*sql.DB, error) {
	dc, err := m.DriverConfig()
	if err != nil {
		return nil, err
	}
	conn, err := gomysql.NewConnector(dc)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create mysql connector")
	}

	db := sql.OpenDB(conn)
	if m.MaxOpenConns > 0 {
		db.SetMaxOpenConns(m.MaxOpenConns)
	}
	if m.MaxIdleConns > 0 {
		db.SetMaxIdleConns(m.MaxIdleConns)
	}
	if m.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(m.ConnMaxLifetime)
	}
	return db, nil
}

// LoadConfigFromEnv will attempt to load a MySQL object
// from environment variables. If not populated, nil
// is returned.
func LoadConfigFromEnv() *Config {
	var mysql Config
	envconfig.Process("", &mysql)
	if mysql.Host != "" {
		return &mysql
	}
	return nil
}
