package config

import (
	"flag"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"UTTT_DEPTH", "UTTT_MOVE_TIME", "UTTT_DB", "UTTT_WORKERS"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.Depth != 4 || c.MoveTime != time.Second || c.DBPath != "data/games.db" {
		t.Errorf("defaults = %+v", c)
	}
	if c.Workers < 1 {
		t.Errorf("workers = %d", c.Workers)
	}
}

func TestLoadEnvAndFlags(t *testing.T) {
	t.Setenv("UTTT_DEPTH", "6")
	t.Setenv("UTTT_MOVE_TIME", "250ms")
	t.Setenv("UTTT_WORKERS", "nope")
	c := Load()
	if c.Depth != 6 || c.MoveTime != 250*time.Millisecond {
		t.Errorf("env = %+v", c)
	}
	if c.Workers != defaultWorkers() {
		t.Errorf("unparsable workers = %d, want default", c.Workers)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.BindFlags(fs)
	c.BindStorageFlags(fs)
	if err := fs.Parse([]string{"-depth", "2", "-db", "x.db"}); err != nil {
		t.Fatal(err)
	}
	if c.Depth != 2 || c.DBPath != "x.db" || c.MoveTime != 250*time.Millisecond {
		t.Errorf("flags = %+v", c)
	}
}
