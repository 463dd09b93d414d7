package reviews

import (
	"context"
	"strings"
	"testing"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/vibeoutfit-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListReviews(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixtures(t, db)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	cat := fx.Category("coats", 1, nil, true)
	fx.Product(cat.ID, "trench", "120.00")
	ana := fx.User("ana@example.com")
	fx.Update(ana, map[string]any{"first_name": "Ana", "last_name": "Ruiz"})
	bo := fx.User("bo@example.com")

	created, err := svc.Create(context.Background(), ana.ID, "trench", CreateReviewRequest{Rating: 5, Comment: "  warm and light  "})
	require.NoError(t, err)
	assert.Equal(t, "warm and light", created.Comment)
	assert.Equal(t, "Ana Ruiz", created.UserName)

	_, err = svc.Create(context.Background(), bo.ID, "trench", CreateReviewRequest{Rating: 3, Comment: "ok"})
	require.NoError(t, err)

	list, err := svc.List(context.Background(), "trench")
	require.NoError(t, err)
	require.Len(t, list, 2)
	names := []string{list[0].UserName, list[1].UserName}
	assert.ElementsMatch(t, []string{"Ana Ruiz", "bo"}, names)
}

func TestCreateReviewDuplicateIsConflict(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixtures(t, db)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	cat := fx.Category("coats", 1, nil, true)
	fx.Product(cat.ID, "parka", "150.00")
	u := fx.User("u@example.com")

	_, err = svc.Create(context.Background(), u.ID, "parka", CreateReviewRequest{Rating: 4, Comment: "good"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), u.ID, "parka", CreateReviewRequest{Rating: 1, Comment: "changed my mind"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))
}

func TestCreateReviewValidation(t *testing.T) {
	db := dbtest.Open(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	cases := map[string]CreateReviewRequest{
		"rating too low":  {Rating: 0, Comment: "x"},
		"rating too high": {Rating: 6, Comment: "x"},
		"blank comment":   {Rating: 3, Comment: "   "},
		"long comment":    {Rating: 3, Comment: strings.Repeat("a", maxCommentLength+1)},
	}
	for name, input := range cases {
		_, err := svc.Create(context.Background(), uuid.New(), "anything", input)
		require.Error(t, err, name)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err), name)
	}
}

func TestReviewsUnknownProduct(t *testing.T) {
	db := dbtest.Open(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	_, err = svc.List(context.Background(), "ghost")
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}
