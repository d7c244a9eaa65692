package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionFlow(t *testing.T) {
	ctx := context.Background()
	llm := &scriptedLLM{replies: []reply{
		{text: "first brief"},
		{text: "second brief"},
		{err: errors.New("both models down")},
	}}
	s := NewSession("s1", newTestAgent(t, llm))

	_, err := s.Revise(ctx, FieldBrief, "anything")
	assert.ErrorIs(t, err, ErrNoCurrentEntry)

	first, err := s.Propose(ctx, coForm())
	require.NoError(t, err)
	assert.Equal(t, 0, s.History.Cursor())

	second, err := s.Revise(ctx, FieldBrief, "more detail")
	require.NoError(t, err)
	assert.Equal(t, 1, s.History.Cursor())
	assert.Equal(t, first.Subject, second.Subject)

	_, err = s.Revise(ctx, FieldBrief, "again")
	require.Error(t, err)
	assert.Equal(t, 2, s.History.Len(), "failed generation is not recorded")

	require.True(t, s.Move(-1))
	edited, err := s.Edit(0, FieldBrief, "hand edited")
	require.NoError(t, err)
	assert.Equal(t, "hand edited", edited.Brief)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "hand edited", cur.Brief)
	assert.Equal(t, 2, s.History.Len(), "edits do not create versions")
}

func TestSessionSaveEdits(t *testing.T) {
	ctx := context.Background()
	llm := &scriptedLLM{replies: []reply{{text: "first brief"}, {text: "second brief"}}}
	s := NewSession("s1", newTestAgent(t, llm))

	_, err := s.SaveEdits(0, map[Field]string{FieldBrief: "x"})
	assert.ErrorIs(t, err, ErrNoCurrentEntry)

	_, err = s.Propose(ctx, coForm())
	require.NoError(t, err)
	_, err = s.Revise(ctx, FieldBrief, "shorter")
	require.NoError(t, err)

	n, err := s.SaveEdits(1, map[Field]string{FieldBrief: "second brief"})
	require.NoError(t, err)
	assert.Zero(t, n, "unchanged text is not written")

	n, err = s.SaveEdits(0, map[Field]string{FieldBrief: "second brief"})
	require.NoError(t, err)
	assert.Zero(t, n, "unchanged text never trips the version check")

	_, err = s.SaveEdits(0, map[Field]string{FieldBrief: "typed on an old page"})
	assert.ErrorIs(t, err, ErrStaleVersion)

	n, err = s.SaveEdits(1, map[Field]string{FieldBrief: "line one\r\nline two", FieldCitation: "a citation"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	cur, _ := s.Current()
	assert.Equal(t, "line one\nline two", cur.Brief)
	assert.Equal(t, "a citation", cur.Citation)
	assert.Equal(t, 2, s.History.Len())
}
