package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BateCarga-api/internal/domain"
	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
	"github.com/jhoicas/BateCarga-api/internal/infrastructure/memory"
)

func TestSessionRepository_CicloCompleto(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepository()

	s := &entity.Session{ID: "s1", Groups: []entity.ShipmentGroup{{
		Key:    "ACME||Santos",
		Totals: entity.GroupTotals{Value: decimal.RequireFromString("10.50")},
	}}}
	require.NoError(t, repo.Create(ctx, s))
	assert.ErrorIs(t, repo.Create(ctx, s), domain.ErrDuplicate, "id repetido")

	got, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ACME||Santos", got.Groups[0].Key)
	assert.True(t, decimal.RequireFromString("10.5").Equal(got.Groups[0].Totals.Value))

	got.Groups[0].Key = "modificado"
	again, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "ACME||Santos", again.Groups[0].Key, "las lecturas son copias")

	require.NoError(t, repo.Save(ctx, got))
	saved, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "modificado", saved.Groups[0].Key)

	require.NoError(t, repo.Delete(ctx, "s1"))
	missing, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.ErrorIs(t, repo.Save(ctx, got), domain.ErrNotFound)
}

func TestSessionRepository_ListByOperator(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepository()
	base := time.Date(2024, 10, 7, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &entity.Session{ID: "a", OperatorID: "op1", UpdatedAt: base}))
	require.NoError(t, repo.Create(ctx, &entity.Session{ID: "b", OperatorID: "op1", UpdatedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &entity.Session{ID: "c", OperatorID: "op2", UpdatedAt: base}))

	list, err := repo.ListByOperator(ctx, "op1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID, "la más reciente primero")
	assert.Equal(t, "a", list[1].ID)
}
