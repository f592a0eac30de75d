package mysql

import (
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/google/go-cmp/cmp"
)

func TestConfigDriverConfig(t *testing.T) {
	tests := []struct {
		name  string
		given Config

		wantAddr    string
		wantLoc     string
		wantRead    time.Duration
		wantWrite   time.Duration
		wantParams  map[string]string
		wantInvalid bool
	}{
		{
			"defaults",
			Config{User: "ajson", Pw: "pw", Host: "db.local", DBName: "items"},

			"db.local:3306",
			DefaultLocation,
			0,
			0,
			nil,
			false,
		},
		{
			"all options",
			Config{
				User:            "ajson",
				Pw:              "pw",
				Host:            "db.local",
				Port:            3307,
				DBName:          "items",
				Location:        "UTC",
				ReadTimeout:     5 * time.Second,
				WriteTimeout:    7 * time.Second,
				AddtlDSNOptions: "charset=utf8mb4&collation=utf8mb4_bin",
			},

			"db.local:3307",
			"UTC",
			5 * time.Second,
			7 * time.Second,
			map[string]string{"charset": "utf8mb4", "collation": "utf8mb4_bin"},
			false,
		},
		{
			"unknown location",
			Config{Host: "db.local", Location: "Nowhere/Atlantis"},

			"",
			"",
			0,
			0,
			nil,
			true,
		},
		{
			"broken options",
			Config{Host: "db.local", AddtlDSNOptions: "charset=%zz"},

			"",
			"",
			0,
			0,
			nil,
			true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.given.DriverConfig()
			if test.wantInvalid {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}

			if got.Net != "tcp" || got.Addr != test.wantAddr {
				t.Errorf("expected address tcp(%s), got %s(%s)", test.wantAddr, got.Net, got.Addr)
			}
			if got.User != test.given.User || got.Passwd != test.given.Pw || got.DBName != test.given.DBName {
				t.Errorf("unexpected credentials %q/%q on %q", got.User, got.Passwd, got.DBName)
			}
			if !got.ParseTime {
				t.Error("expected parseTime to be enabled")
			}
			if got.Loc.String() != test.wantLoc {
				t.Errorf("expected location %q, got %q", test.wantLoc, got.Loc)
			}
			if got.ReadTimeout != test.wantRead || got.WriteTimeout != test.wantWrite {
				t.Errorf("expected timeouts %s/%s, got %s/%s",
					test.wantRead, test.wantWrite, got.ReadTimeout, got.WriteTimeout)
			}
			if diff := cmp.Diff(test.wantParams, got.Params); diff != "" {
				t.Errorf("unexpected params (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigDSN(t *testing.T) {
	given := Config{
		User:            "ajson",
		Pw:              "pw",
		Host:            "db.local",
		DBName:          "items",
		Location:        "UTC",
		AddtlDSNOptions: "charset=utf8mb4",
	}

	dsn, err := given.DSN()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	got, err := gomysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("unable to parse DSN %q: %s", dsn, err)
	}
	if got.Addr != "db.local:3306" || got.DBName != "items" || got.User != "ajson" {
		t.Errorf("unexpected DSN %q", dsn)
	}
	if got.Params["charset"] != "utf8mb4" {
		t.Errorf("expected charset option to survive, got %#v", got.Params)
	}
}

func TestConfigTableName(t *testing.T) {
	if got := (&Config{}).TableName(); got != DefaultTable {
		t.Errorf("expected default table %q, got %q", DefaultTable, got)
	}
	if got := (&Config{Table: "records"}).TableName(); got != "records" {
		t.Errorf("expected table %q, got %q", "records", got)
	}
}

func TestConfigDB(t *testing.T) {
	db, err := (&Config{Host: "db.local", MaxOpenConns: 3}).DB()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	defer db.Close()

	if got := db.Stats().MaxOpenConnections; got != 3 {
		t.Errorf("expected 3 max open connections, got %d", got)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("MYSQL_HOST_NAME", "db.local")
	t.Setenv("MYSQL_UNIQUE_KEY1", "true")

	got := LoadConfigFromEnv()
	if got == nil {
		t.Fatal("expected a config when the host is set")
	}
	if got.Port != DefaultMySQLPort || got.Table != DefaultTable || !got.UniqueKey1 {
		t.Errorf("unexpected config %#v", got)
	}
	if got.MaxOpenConns != 4 || got.MaxIdleConns != 2 || got.ConnMaxLifetime != 5*time.Minute {
		t.Errorf("unexpected pool settings %d/%d/%s", got.MaxOpenConns, got.MaxIdleConns, got.ConnMaxLifetime)
	}
}

func TestLoadConfigFromEnvUnset(t *testing.T) {
	t.Setenv("MYSQL_HOST_NAME", "")
	if got := LoadConfigFromEnv(); got != nil {
		t.Errorf("expected nil config without a host, got %#v", got)
	}
}
