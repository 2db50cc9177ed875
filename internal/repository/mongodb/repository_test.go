package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/salestracker/internal/repository/store"
)

func TestMongoDBRepository_RejectsEmptyKey(t *testing.T) {
	repo := &MongoDBRepository{dbName: "salestracker", collName: defaultCollection}
	ctx := context.Background()

	_, _, err := repo.Get(ctx, "")
	assert.ErrorIs(t, err, store.ErrEmptyKey)
	assert.ErrorIs(t, repo.Set(ctx, "", []byte("x")), store.ErrEmptyKey)
	assert.ErrorIs(t, repo.Delete(ctx, ""), store.ErrEmptyKey)
}
