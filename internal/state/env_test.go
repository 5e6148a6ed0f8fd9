package state

import (
	"context"
	"log"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestEnvFromContext(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env == nil || env.Log == nil {
		t.Fatal("expected env with a logger")
	}
	if env.Uptime() < 0 {
		t.Fatal("negative uptime")
	}
	if EnvFromContext(ctx) != env {
		t.Fatal("context should carry the same env")
	}
}

func TestEnvFromContext_Missing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	EnvFromContext(context.Background())
}

func TestRedirectStdLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	env := newLocalEnv()
	env.Log = zap.New(core)
	env.RedirectStdLog()
	log.Print("from std log")
	env.RestoreStdLog()
	log.Print("after restore")
	if logs.Len() != 1 || logs.All()[0].Message != "from std log" {
		t.Fatalf("unexpected entries %v", logs.All())
	}
}

func TestRestoreStdLog_WithoutRedirect(t *testing.T) {
	env := newLocalEnv()
	env.Log = zaptest.NewLogger(t)
	env.RestoreStdLog()
}
