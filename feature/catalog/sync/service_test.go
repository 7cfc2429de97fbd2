package sync

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"collection-manager/core/storage/mocks"
	"collection-manager/feature/catalog"
	"collection-manager/feature/catalog/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestToCatalogCard(t *testing.T) {
	ink := "Ruby"
	rarity := "rare"
	text := "Rush."
	cost := 3

	wire := Card{
		ID:     "c1",
		Name:   "Maui",
		Ink:    &ink,
		Rarity: &rarity,
		Text:   &text,
		Cost:   &cost,
		Type:   []string{"Character", "Hero"},
	}
	set := Set{ID: "s2", Name: "Rise of the Floodborn", Code: "2"}

	card := toCatalogCard(wire, set)

	assert.Equal(t, "c1", card.ID)
	assert.Equal(t, "Maui", card.Name)
	assert.Equal(t, "2", card.SetCode)
	assert.Equal(t, "Rise of the Floodborn", card.SetName)
	assert.Equal(t, "Ruby", card.Ink)
	assert.Equal(t, "rare", card.Rarity)
	assert.Equal(t, "Rush.", card.Text)
	assert.Equal(t, "Character, Hero", card.Type)
	require.NotNil(t, card.Cost)
	assert.Equal(t, 3, *card.Cost)
}

func TestToCatalogCard_SetOverride(t *testing.T) {
	wire := Card{ID: "c9", Name: "Promo Elsa"}
	wire.Set = &struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}{Code: "1", Name: "The First Chapter"}

	card := toCatalogCard(wire, Set{Code: "9", Name: "Wrong"})
	assert.Equal(t, "1", card.SetCode)
	assert.Equal(t, "The First Chapter", card.SetName)
}

func newMirrorService(store *mocks.Client, fetch func(ctx context.Context, url string) (*http.Response, error)) *Service {
	return &Service{
		store:      store,
		bucket:     "cards",
		logger:     zap.NewNop(),
		cfg:        catalog.SyncConfig{MirrorImages: true},
		fetchImage: fetch,
	}
}

func TestMirrorImage(t *testing.T) {
	card := models.Card{ID: "c1", ImageURL: "https://cards.example/c1.avif"}
	key := catalog.ImageObjectKey(&card)

	t.Run("Uploads missing scan", func(t *testing.T) {
		store := new(mocks.Client)
		store.On("StatObject", mock.Anything, "cards", key, mock.Anything).
			Return(minio.ObjectInfo{}, errors.New("not found"))
		store.On("PutObject", mock.Anything, "cards", key, mock.Anything, int64(4), mock.Anything).
			Return(minio.UploadInfo{}, nil)

		svc := newMirrorService(store, func(ctx context.Context, url string) (*http.Response, error) {
			return &http.Response{
				StatusCode:    http.StatusOK,
				ContentLength: 4,
				Header:        http.Header{"Content-Type": []string{"image/avif"}},
				Body:          io.NopCloser(strings.NewReader("data")),
			}, nil
		})

		mirrored, err := svc.mirrorImage(context.Background(), card)
		require.NoError(t, err)
		assert.True(t, mirrored)
		store.AssertExpectations(t)
	})

	t.Run("Skips existing scan", func(t *testing.T) {
		store := new(mocks.Client)
		store.On("StatObject", mock.Anything, "cards", key, mock.Anything).
			Return(minio.ObjectInfo{Key: key}, nil)

		svc := newMirrorService(store, nil)

		mirrored, err := svc.mirrorImage(context.Background(), card)
		require.NoError(t, err)
		assert.False(t, mirrored)
		store.AssertNotCalled(t, "PutObject")
	})

	t.Run("Skips card without scan", func(t *testing.T) {
		store := new(mocks.Client)
		svc := newMirrorService(store, nil)

		mirrored, err := svc.mirrorImage(context.Background(), models.Card{ID: "c2"})
		require.NoError(t, err)
		assert.False(t, mirrored)
	})

	t.Run("Reports upstream failure", func(t *testing.T) {
		store := new(mocks.Client)
		store.On("StatObject", mock.Anything, "cards", key, mock.Anything).
			Return(minio.ObjectInfo{}, errors.New("not found"))

		svc := newMirrorService(store, func(ctx context.Context, url string) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader(""))}, nil
		})

		_, err := svc.mirrorImage(context.Background(), card)
		assert.Error(t, err)
	})
}
