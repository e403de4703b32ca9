package repository_test

import (
	"context"
	"sort"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/repository"
	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

func TestRedisStore_GetSnapshots(t *testing.T) {
	mr := miniredis.RunT(t)
	store := repository.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer store.Close()

	mr.Set(models.QuoteKey(models.ClassFX, "USD_JPY"), `{"symbol":"USD_JPY","bid":150}`)
	mr.Set(models.QuoteKey(models.ClassFX, "EUR_JPY"), `{"symbol":"EUR_JPY","bid":162}`)
	mr.SAdd(models.IndexKey(models.ClassFX), "USD_JPY", "EUR_JPY", "GBP_JPY") // GBP_JPY expired

	got, err := store.GetSnapshots(context.Background(), models.ClassFX)
	if err != nil {
		t.Fatalf("GetSnapshots: %v", err)
	}
	sort.Strings(got)
	if len(got) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d: %v", len(got), got)
	}
	if got[0] != `{"symbol":"EUR_JPY","bid":162}` {
		t.Errorf("Unexpected payload %s", got[0])
	}
}

func TestRedisStore_EmptyIndex(t *testing.T) {
	mr := miniredis.RunT(t)
	store := repository.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	got, err := store.GetSnapshots(context.Background(), models.ClassCrypto)
	if err != nil {
		t.Fatalf("GetSnapshots: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected nothing, got %v", got)
	}
}

func TestRedisStore_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	store := repository.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	mr.Close()

	if _, err := store.GetSnapshots(context.Background(), models.ClassFX); err == nil {
		t.Fatal("Expected error when Redis is down")
	}
}
