package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/anuragch/folio/internal/models"
	"github.com/anuragch/folio/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupMirror creates a mirror over its own in-memory SQLite database. The
// production mirror speaks Postgres; the store contract is identical.
func setupMirror(t *testing.T) *services.Mirror {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create mirror test database: %v", err)
	}
	if err := db.AutoMigrate(&models.ContentRow{}); err != nil {
		t.Fatalf("Failed to migrate mirror test database: %v", err)
	}
	return services.NewMirror(db, 2*time.Second, "postgres://mirror.test.example.com/folio")
}

// setupBrokenMirror creates a configured mirror whose connection is already
// closed, so every call fails as unreachable.
func setupBrokenMirror(t *testing.T) *services.Mirror {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create mirror test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("Failed to close mirror connection: %v", err)
	}
	return services.NewMirror(db, 2*time.Second, "postgres://mirror.test.example.com/folio")
}

func noMirror() *services.Mirror {
	return services.NewMirror(nil, 2*time.Second, "")
}

func mustDoc(t *testing.T, title string) []byte {
	content := models.DefaultContent()
	content.Hero.Title = title
	raw, err := json.Marshal(content)
	require.NoError(t, err)
	return raw
}

func TestReadReturnsDefaultsWhenEverythingIsEmpty(t *testing.T) {
	svc := services.NewContentService(setupLocalStore(t), noMirror())

	doc := svc.Read(context.Background())

	assert.JSONEq(t, string(models.DefaultJSON()), string(doc))
}

func TestReadReturnsDefaultsWhenBothStoresFail(t *testing.T) {
	// a local store whose connection is closed and an unreachable mirror
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ContentRow{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	svc := services.NewContentService(services.NewLocalStore(db), setupBrokenMirror(t))

	doc := svc.Read(context.Background())

	assert.JSONEq(t, string(models.DefaultJSON()), string(doc))
}

func TestWriteIsDurableWithoutMirror(t *testing.T) {
	local := setupLocalStore(t)
	svc := services.NewContentService(local, noMirror())

	doc := mustDoc(t, "WRITTEN TITLE")
	require.NoError(t, svc.Write(context.Background(), doc))

	got := svc.Read(context.Background())
	assert.JSONEq(t, string(doc), string(got))
}

func TestWriteSucceedsWhenMirrorIsDown(t *testing.T) {
	local := setupLocalStore(t)
	svc := services.NewContentService(local, setupBrokenMirror(t))

	doc := mustDoc(t, "SURVIVES MIRROR OUTAGE")
	require.NoError(t, svc.Write(context.Background(), doc))

	stored, err := local.Get(models.ContentKey)
	require.NoError(t, err)
	assert.JSONEq(t, string(doc), string(stored))
}

func TestWriteRejectsMalformedDocument(t *testing.T) {
	svc := services.NewContentService(setupLocalStore(t), noMirror())

	err := svc.Write(context.Background(), []byte(`not json at all`))

	assert.True(t, errors.Is(err, services.ErrMalformedDocument))
}

func TestWritePropagatesToMirror(t *testing.T) {
	local := setupLocalStore(t)
	mirror := setupMirror(t)
	svc := services.NewContentService(local, mirror)

	doc := mustDoc(t, "MIRRORED")
	require.NoError(t, svc.Write(context.Background(), doc))

	mirrored, err := mirror.TryGet(context.Background(), models.ContentKey)
	require.NoError(t, err)
	assert.JSONEq(t, string(doc), string(mirrored))
}

func TestReadPrefersMirrorOverLocal(t *testing.T) {
	local := setupLocalStore(t)
	mirror := setupMirror(t)
	svc := services.NewContentService(local, mirror)

	require.NoError(t, local.Put(models.ContentKey, mustDoc(t, "LOCAL TITLE")))
	require.NoError(t, mirror.Upsert(context.Background(), models.ContentKey, mustDoc(t, "MIRROR TITLE")))

	var got models.SiteContent
	require.NoError(t, json.Unmarshal(svc.Read(context.Background()), &got))
	assert.Equal(t, "MIRROR TITLE", got.Hero.Title)
}

func TestReadFallsBackWhenMirrorIsEmpty(t *testing.T) {
	local := setupLocalStore(t)
	svc := services.NewContentService(local, setupMirror(t))

	require.NoError(t, local.Put(models.ContentKey, mustDoc(t, "LOCAL ONLY")))

	var got models.SiteContent
	require.NoError(t, json.Unmarshal(svc.Read(context.Background()), &got))
	assert.Equal(t, "LOCAL ONLY", got.Hero.Title)
}

func TestReadFallsBackWhenMirrorIsDown(t *testing.T) {
	local := setupLocalStore(t)
	svc := services.NewContentService(local, setupBrokenMirror(t))

	require.NoError(t, local.Put(models.ContentKey, mustDoc(t, "LOCAL WINS")))

	var got models.SiteContent
	require.NoError(t, json.Unmarshal(svc.Read(context.Background()), &got))
	assert.Equal(t, "LOCAL WINS", got.Hero.Title)
}

func TestReadSkipsMalformedMirrorDocument(t *testing.T) {
	local := setupLocalStore(t)
	mirror := setupMirror(t)
	svc := services.NewContentService(local, mirror)

	require.NoError(t, mirror.Upsert(context.Background(), models.ContentKey, []byte(`{"broken":`)))
	require.NoError(t, local.Put(models.ContentKey, mustDoc(t, "CLEAN LOCAL")))

	var got models.SiteContent
	require.NoError(t, json.Unmarshal(svc.Read(context.Background()), &got))
	assert.Equal(t, "CLEAN LOCAL", got.Hero.Title)
}

func TestSyncToMirrorRequiresConfiguration(t *testing.T) {
	svc := services.NewContentService(setupLocalStore(t), noMirror())

	err := svc.SyncToMirror(context.Background())

	assert.True(t, errors.Is(err, services.ErrMirrorNotConfigured))
}

func TestSyncToMirrorPushesLocalDocument(t *testing.T) {
	local := setupLocalStore(t)
	mirror := setupMirror(t)
	svc := services.NewContentService(local, mirror)

	doc := mustDoc(t, "PUSH ME")
	require.NoError(t, local.Put(models.ContentKey, doc))

	require.NoError(t, svc.SyncToMirror(context.Background()))

	mirrored, err := mirror.TryGet(context.Background(), models.ContentKey)
	require.NoError(t, err)
	assert.JSONEq(t, string(doc), string(mirrored))
}

func TestSyncToMirrorSurfacesMirrorFailure(t *testing.T) {
	local := setupLocalStore(t)
	svc := services.NewContentService(local, setupBrokenMirror(t))

	require.NoError(t, local.Put(models.ContentKey, mustDoc(t, "UNPUSHABLE")))

	err := svc.SyncToMirror(context.Background())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, services.ErrMirrorNotConfigured))
}

func TestMirrorStatus(t *testing.T) {
	unconfigured := services.NewContentService(setupLocalStore(t), noMirror())
	assert.False(t, unconfigured.MirrorStatus().Configured)
	assert.Empty(t, unconfigured.MirrorStatus().EndpointHint)

	configured := services.NewContentService(setupLocalStore(t), setupMirror(t))
	status := configured.MirrorStatus()
	assert.True(t, status.Configured)
	assert.Equal(t, "postgres://mirr...", status.EndpointHint)

	// a down mirror still reports configured; behavior degrades to local
	down := services.NewContentService(setupLocalStore(t), setupBrokenMirror(t))
	assert.True(t, down.MirrorStatus().Configured)
}
