package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-selection/internal/domain/entity"
	"catalog-selection/internal/repository"
	"catalog-selection/internal/usecase/selection"
)

func TestCursor_Defaults(t *testing.T) {
	c := selection.NewCursor(12)
	assert.Equal(t, 1, c.Page())
	assert.Equal(t, 12, c.PageSize())
	assert.Equal(t, int64(0), c.Total())
	assert.Empty(t, c.VisibleIDs())
}

func TestCursor_GoToPage(t *testing.T) {
	c := selection.NewCursor(12)

	_, err := c.GoToPage(0)
	assert.ErrorIs(t, err, selection.ErrInvalidPage)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
	_, err = c.GoToPage(-3)
	assert.ErrorIs(t, err, selection.ErrInvalidPage)
	assert.Equal(t, 1, c.Page())

	// no upper bound
	seq, err := c.GoToPage(1_000_000)
	require.NoError(t, err)
	assert.Equal(t, 1_000_000, c.Page())
	assert.True(t, c.RecordFetchResult(seq, repository.Page{Records: []entity.Record{}, Total: 30}))
	assert.Equal(t, int64(30), c.Total())
	assert.Empty(t, c.VisibleIDs())
}

func TestCursor_StaleResponseDropped(t *testing.T) {
	c := selection.NewCursor(2)

	seq2, err := c.GoToPage(2)
	require.NoError(t, err)
	seq3, err := c.GoToPage(3)
	require.NoError(t, err)

	// page 3 answers first
	assert.True(t, c.RecordFetchResult(seq3, repository.Page{
		Records: []entity.Record{{ID: 5}, {ID: 6}}, Total: 10,
	}))
	// the slow page 2 response must not overwrite it
	assert.False(t, c.RecordFetchResult(seq2, repository.Page{
		Records: []entity.Record{{ID: 3}, {ID: 4}}, Total: 99,
	}))

	state := c.State()
	assert.Equal(t, 3, state.Page)
	assert.Equal(t, int64(10), state.Total)
	assert.Equal(t, []int64{5, 6}, c.VisibleIDs())
}

func TestCursor_VisibleIsACopy(t *testing.T) {
	c := selection.NewCursor(2)
	seq, _ := c.GoToPage(1)
	records := []entity.Record{{ID: 1}, {ID: 2}}
	c.RecordFetchResult(seq, repository.Page{Records: records, Total: 2})

	records[0].ID = 100
	visible := c.Visible()
	visible[1].ID = 200

	assert.Equal(t, []int64{1, 2}, c.VisibleIDs())
}

func TestCursor_NegativeTotalClamped(t *testing.T) {
	c := selection.NewCursor(12)
	seq, _ := c.GoToPage(1)
	c.RecordFetchResult(seq, repository.Page{Total: -1})
	assert.Equal(t, int64(0), c.Total())
}
