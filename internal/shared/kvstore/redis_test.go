package kvstore_test

import (
	"context"
	"testing"

	"leavedesk/internal/shared/kvstore"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		store := kvstore.NewRedisStore(db)

		mock.ExpectGet("users").SetVal(`[{"userId":"R001"}]`)

		payload, err := store.Load(ctx, "users")

		assert.NoError(t, err)
		assert.JSONEq(t, `[{"userId":"R001"}]`, string(payload))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing key maps to ErrMissing", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		store := kvstore.NewRedisStore(db)

		mock.ExpectGet("users").RedisNil()

		_, err := store.Load(ctx, "users")

		assert.ErrorIs(t, err, kvstore.ErrMissing)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStore_Save(t *testing.T) {
	ctx := context.Background()

	db, mock := redismock.NewClientMock()
	store := kvstore.NewRedisStore(db)

	payload := []byte(`[]`)
	mock.ExpectSet("leaveRecords", payload, 0).SetVal("OK")

	err := store.Save(ctx, "leaveRecords", payload)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_SaveAll(t *testing.T) {
	ctx := context.Background()

	t.Run("commits every entry in one transaction", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		store := kvstore.NewRedisStore(db)

		users := []byte(`[{"userId":"R001"}]`)
		records := []byte(`[]`)

		mock.ExpectTxPipeline()
		mock.ExpectSet("users", users, 0).SetVal("OK")
		mock.ExpectSet("leaveRecords", records, 0).SetVal("OK")
		mock.ExpectTxPipelineExec()

		err := store.SaveAll(ctx,
			kvstore.Entry{Key: "users", Payload: users},
			kvstore.Entry{Key: "leaveRecords", Payload: records},
		)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no entries touches nothing", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		store := kvstore.NewRedisStore(db)

		err := store.SaveAll(ctx)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("load returns ErrMissing before first save", func(t *testing.T) {
		store := kvstore.NewMemoryStore()

		_, err := store.Load(ctx, "users")
		assert.ErrorIs(t, err, kvstore.ErrMissing)
	})

	t.Run("save then load round trips a copy", func(t *testing.T) {
		store := kvstore.NewMemoryStore()

		payload := []byte(`[1,2,3]`)
		assert.NoError(t, store.Save(ctx, "users", payload))

		loaded, err := store.Load(ctx, "users")
		assert.NoError(t, err)
		assert.Equal(t, payload, loaded)

		// Mutating the loaded slice must not leak into the store.
		loaded[0] = 'x'
		again, err := store.Load(ctx, "users")
		assert.NoError(t, err)
		assert.Equal(t, payload, again)
	})

	t.Run("save all writes every entry", func(t *testing.T) {
		store := kvstore.NewMemoryStore()

		err := store.SaveAll(ctx,
			kvstore.Entry{Key: "users", Payload: []byte(`[]`)},
			kvstore.Entry{Key: "leaveRecords", Payload: []byte(`[]`)},
		)
		assert.NoError(t, err)

		_, err = store.Load(ctx, "users")
		assert.NoError(t, err)
		_, err = store.Load(ctx, "leaveRecords")
		assert.NoError(t, err)
	})
}
