package ingestion

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	name  string
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) Name() string { return f.name }

func (f *fakeExtractor) Extract(context.Context, string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestChainExtractor(t *testing.T) {
	t.Parallel()

	t.Run("first success wins", func(t *testing.T) {
		t.Parallel()
		failing := &fakeExtractor{name: "a", err: errors.New("corrupt xref")}
		blank := &fakeExtractor{name: "b", text: "  \n "}
		good := &fakeExtractor{name: "c", text: "1. Q?"}
		unused := &fakeExtractor{name: "d", text: "never"}

		chain := ChainExtractor{failing, blank, good, unused}
		text, err := chain.Extract(context.Background(), "x.pdf")
		require.NoError(t, err)
		assert.Equal(t, "1. Q?", text)
		assert.Zero(t, unused.calls)
		assert.Equal(t, "a -> b -> c -> d", chain.Name())
	})

	t.Run("all failures are reported", func(t *testing.T) {
		t.Parallel()
		chain := ChainExtractor{
			&fakeExtractor{name: "a", err: errors.New("corrupt xref")},
			&fakeExtractor{name: "b", err: errors.New("executable not found")},
		}
		_, err := chain.Extract(context.Background(), "x.pdf")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "a: corrupt xref")
		assert.Contains(t, err.Error(), "b: executable not found")
	})

	t.Run("empty chain", func(t *testing.T) {
		t.Parallel()
		_, err := ChainExtractor{}.Extract(context.Background(), "x.pdf")
		require.ErrorIs(t, err, ErrNoExtractor)
	})
}

func TestPdftotextExtractor_MissingBinary(t *testing.T) {
	t.Parallel()

	e := PdftotextExtractor{Binary: filepath.Join(t.TempDir(), "no-such-pdftotext")}
	_, err := e.Extract(context.Background(), "x.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext failed")
}

func TestGoPDFExtractor_NotAPDF(t *testing.T) {
	t.Parallel()

	_, err := GoPDFExtractor{}.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
}
