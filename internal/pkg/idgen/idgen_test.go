package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/idgen"
)

func TestSequentialGenerator(t *testing.T) {
	g := idgen.NewSequential("file")
	assert.Equal(t, "file_1", g.Generate())
	assert.Equal(t, "file_2", g.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUIDGenerator(t *testing.T) {
	id := idgen.NewUUID("").Generate()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	prefixed := idgen.NewUUID("sheet").Generate()
	assert.True(t, strings.HasPrefix(prefixed, "sheet_"))
	assert.NotEqual(t, id, idgen.NewUUID("").Generate())
}
