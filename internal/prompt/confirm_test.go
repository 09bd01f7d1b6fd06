package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmAnswers(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"  y  \n", true},
		{"y", true},
		{"n\n", false},
		{"yes\n", false},
		{"Y\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.input), &out)

			got, err := p.Confirm("Remove /p/.venv?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Remove /p/.venv? (y/N) \n", out.String())
		})
	}
}

func TestConfirmSharesBufferedInput(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("y\nn\n"), &out)

	first, err := p.Confirm("first?")
	require.NoError(t, err)
	second, err := p.Confirm("second?")
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("stdin closed") }

func TestConfirmReadError(t *testing.T) {
	var out bytes.Buffer
	p := New(failingReader{}, &out)

	_, err := p.Confirm("question?")
	assert.ErrorContains(t, err, "stdin closed")
}

func TestFixedAnswers(t *testing.T) {
	yes, _ := AlwaysYes("q")
	no, _ := AlwaysNo("q")
	assert.True(t, yes)
	assert.False(t, no)
}
