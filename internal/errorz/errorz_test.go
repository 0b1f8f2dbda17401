package errorz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	var ve ValidationError
	require.NoError(t, ve.OrNil())

	ve.Add("subject", "This field is required.")
	ve.Add("content", "This field is required.")
	err := ve.OrNil()
	require.Error(t, err)
	assert.Equal(t, "validation failed: content: This field is required.; subject: This field is required.", err.Error())

	wrapped := fmt.Errorf("create question: %w", err)
	got, ok := AsValidation(wrapped)
	require.True(t, ok)
	assert.Len(t, got.Fields, 2)
}

func TestNotice(t *testing.T) {
	err := fmt.Errorf("vote: %w", Refuse(ErrSelfVote, 3, 7))
	assert.ErrorIs(t, err, ErrSelfVote)
	n, ok := AsNotice(err)
	require.True(t, ok)
	assert.Equal(t, uint(3), n.QuestionID)
	assert.Equal(t, uint(7), n.AnswerID)
	assert.Equal(t, ErrSelfVote.Error(), n.Error())
}
