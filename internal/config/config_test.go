package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given no configuration sources", t, func() {
		t.Setenv("SEMA_CONFIG", "")

		Convey("Load returns the defaults", func() {
			cfg, err := Load(context.Background())

			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9090")
			So(cfg.WordListPath, ShouldEqual, "secretwords.json")
			So(cfg.DefaultTopN, ShouldEqual, 10)
			So(cfg.LookupTimeoutMS, ShouldEqual, 5_000)
		})
	})

	Convey("Given a YAML config file", t, func() {
		path := filepath.Join(t.TempDir(), "config.yaml")
		err := os.WriteFile(path, []byte("addr: \":8080\"\ndb_path: \"\"\n"), 0o600)
		So(err, ShouldBeNil)
		t.Setenv("SEMA_CONFIG", path)

		Convey("The file overrides defaults", func() {
			cfg, err := Load(context.Background())

			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.DBPath, ShouldBeEmpty)
		})

		Convey("Environment variables override the file", func() {
			t.Setenv("SEMA_ADDR", ":7070")
			t.Setenv("SEMA_LOG_LEVEL", "debug")

			cfg, err := Load(context.Background())

			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.LogLevel, ShouldEqual, "debug")
		})
	})

	Convey("Given invalid values", t, func() {
		t.Setenv("SEMA_CONFIG", "")

		Convey("An empty addr is rejected", func() {
			path := filepath.Join(t.TempDir(), "config.yaml")
			So(os.WriteFile(path, []byte("addr: \"\"\n"), 0o600), ShouldBeNil)
			t.Setenv("SEMA_CONFIG", path)

			_, err := Load(context.Background())
			So(err, ShouldWrap, ErrInvalidConfig)
		})

		Convey("A non-positive lookup timeout is rejected", func() {
			t.Setenv("SEMA_LOOKUP_TIMEOUT_MS", "0")

			_, err := Load(context.Background())
			So(err, ShouldWrap, ErrInvalidConfig)
		})

		Convey("A missing config file is reported", func() {
			t.Setenv("SEMA_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := Load(context.Background())
			So(err, ShouldWrap, ErrLoadConfig)
		})
	})
}
