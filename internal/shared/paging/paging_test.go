package paging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-backend/internal/shared/apperr"
)

func TestParse(t *testing.T) {
	req, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, Request{Number: 1, Size: DefaultSize}, req)

	req, err = Parse("3")
	require.NoError(t, err)
	assert.Equal(t, 20, req.Offset())
	assert.Equal(t, 10, req.Limit())

	for _, raw := range []string{"0", "-1", "abc"} {
		_, err := Parse(raw)
		require.Error(t, err, raw)
		assert.True(t, errors.Is(err, apperr.ErrNotFound), raw)
	}
}

func TestNewResult(t *testing.T) {
	res, err := NewResult[int](First(), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{}, res.Items)
	assert.Equal(t, 1, res.Number)
	assert.Equal(t, 10, res.Size)

	_, err = NewResult[int](Request{Number: 2, Size: 10}, nil, 10)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	res, err = NewResult(Request{Number: 2, Size: 10}, []int{11}, 11)
	require.NoError(t, err)
	assert.Equal(t, 11, res.Total)
}

func TestWindow(t *testing.T) {
	all := make([]int, 25)
	for i := range all {
		all[i] = i
	}
	assert.Len(t, Window(First(), all), 10)
	assert.Equal(t, []int{20, 21, 22, 23, 24}, Window(Request{Number: 3, Size: 10}, all))
	assert.Empty(t, Window(Request{Number: 4, Size: 10}, all))
}
