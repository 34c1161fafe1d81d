package badgerstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BateCarga-api/internal/domain"
	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
	"github.com/jhoicas/BateCarga-api/internal/infrastructure/badgerstore"
)

func TestSessionRepository_Persistencia(t *testing.T) {
	db, err := badgerstore.Open(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	repo := badgerstore.NewSessionRepository(db)

	s := &entity.Session{
		ID:           "abc",
		PlateMapping: entity.PlateMapping{"123": "ABC1D23"},
		XMLFileNames: []string{"a.xml"},
	}
	require.NoError(t, repo.Create(ctx, s))
	assert.ErrorIs(t, repo.Create(ctx, s), domain.ErrDuplicate)

	got, err := repo.GetByID(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ABC1D23", got.PlateMapping["123"])

	got.Notices = []string{"aviso"}
	require.NoError(t, repo.Save(ctx, got))
	got, err = repo.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"aviso"}, got.Notices)

	list, err := repo.ListByOperator(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "abc", list[0].ID)

	require.NoError(t, repo.Delete(ctx, "abc"))
	got, err = repo.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, repo.Save(ctx, s), domain.ErrNotFound)
}
