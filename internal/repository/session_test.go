package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuelshammer/LogicCastle-sub010/internal/apperror"
	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
	"github.com/kuelshammer/LogicCastle-sub010/internal/game"
	"github.com/kuelshammer/LogicCastle-sub010/testing/suite"
)

func newSession(t *testing.T, id string, cols ...int) *game.Session {
	t.Helper()

	session, err := game.NewSession(id, entity.GameConfig{
		Variant:  entity.VariantConnect4,
		Geometry: entity.Geometry{Rows: 6, Cols: 7, WinLength: 4, Gravity: true},
		AI:       entity.AIConfig{Strategy: "minimax", SearchDepth: 6, TimeBudget: time.Second},
	})
	require.NoError(t, err)

	for _, col := range cols {
		_, err = session.Apply(entity.ColumnMove(col))
		require.NoError(t, err)
	}

	return session
}

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage, time.Hour)

	// Given: a session with a few moves
	session := newSession(t, "123", 3, 3, 4)

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, session)

	// Then: the record is stored with an expiry
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "session:123").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// Given: a stored session with an undone move
		session := newSession(t, "123", 3, 3, 4, 2)
		_, err := session.Undo()
		require.NoError(t, err)

		err = sessionRepo.CreateOrUpdate(ctx, session)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		restored, err := sessionRepo.GetByID(ctx, session.ID())

		// Then: replaying the record rebuilds the same game
		require.NoError(t, err)
		assert.Equal(t, session.View(), restored.View())
		assert.Equal(t, session.Config(), restored.Config())
		assert.True(t, restored.CanRedo())
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// When: GetByID is called with non-existent ID
		restored, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, restored)
	})

	t.Run("GetByID_CorruptRecord", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)
		require.NoError(t, st.Storage.Set(ctx, "session:bad", "{not json", 0).Err())

		// When:
		_, err := sessionRepo.GetByID(ctx, "bad")

		// Then:
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage, time.Hour)

	// Given: a stored session
	session := newSession(t, "123")
	require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

	// When: DeleteByID is called
	err := sessionRepo.DeleteByID(ctx, session.ID())

	// Then: the session is gone
	require.NoError(t, err)

	_, err = sessionRepo.GetByID(ctx, session.ID())
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}
