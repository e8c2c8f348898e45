package postgres_test

import (
	"context"
	"testing"

	"github.com/dom/qna-service/internal/domain"
	"github.com/dom/qna-service/internal/repository/postgres"
	"github.com/dom/qna-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionAndAnswerRepositories(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB, testutil.NullLogger())
	ctx := context.Background()

	t.Run("list is ordered and paged", func(t *testing.T) {
		testDB.Truncate(t)

		var ids []domain.QuestionID
		for range 4 {
			ids = append(ids, testutil.NewQuestionBuilder().Build(t, repos.Question).ID)
		}

		page, err := repos.Question.List(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, ids[1], page[0].ID)
		assert.Equal(t, ids[2], page[1].ID)
	})

	t.Run("empty results are empty slices", func(t *testing.T) {
		testDB.Truncate(t)

		questions, err := repos.Question.List(ctx, 0, 10)
		require.NoError(t, err)
		assert.NotNil(t, questions)
		assert.Empty(t, questions)

		q := testutil.NewQuestionBuilder().Build(t, repos.Question)
		answers, err := repos.Answer.GetByQuestionID(ctx, q.ID)
		require.NoError(t, err)
		assert.NotNil(t, answers)
		assert.Empty(t, answers)
	})

	t.Run("tags round trip", func(t *testing.T) {
		testDB.Truncate(t)

		q := testutil.NewQuestionBuilder().WithTags("go", "sql").Build(t, repos.Question)
		got, err := repos.Question.GetByID(ctx, q.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"go", "sql"}, []string(got.Tags))
	})

	t.Run("update and missing rows", func(t *testing.T) {
		testDB.Truncate(t)

		q := testutil.NewQuestionBuilder().Build(t, repos.Question)
		q.Title = "changed"
		require.NoError(t, repos.Question.Update(ctx, q))

		got, err := repos.Question.GetByID(ctx, q.ID)
		require.NoError(t, err)
		assert.Equal(t, "changed", got.Title)

		missing := domain.QuestionID(q.ID + 100)
		_, err = repos.Question.GetByID(ctx, missing)
		assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
		assert.ErrorIs(t, repos.Question.Update(ctx, &domain.Question{ID: missing, Title: "t", Content: "c"}), domain.ErrQuestionNotFound)
		assert.ErrorIs(t, repos.Question.Delete(ctx, missing), domain.ErrQuestionNotFound)
	})

	t.Run("answers follow their question", func(t *testing.T) {
		testDB.Truncate(t)

		q := testutil.NewQuestionBuilder().Build(t, repos.Question)
		for _, content := range []string{"one", "two"} {
			require.NoError(t, repos.Answer.Create(ctx, &domain.Answer{Content: content, QuestionID: q.ID}))
		}

		answers, err := repos.Answer.GetByQuestionID(ctx, q.ID)
		require.NoError(t, err)
		require.Len(t, answers, 2)
		assert.Equal(t, "one", answers[0].Content)

		err = repos.Answer.Create(ctx, &domain.Answer{Content: "orphan", QuestionID: q.ID + 100})
		assert.ErrorIs(t, err, domain.ErrDatabaseQuery)

		require.NoError(t, repos.Question.Delete(ctx, q.ID))
		answers, err = repos.Answer.GetByQuestionID(ctx, q.ID)
		require.NoError(t, err)
		assert.Empty(t, answers)
	})
}
