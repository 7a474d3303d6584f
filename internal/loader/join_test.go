package loader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/shipload/internal/files/filesystem"
	"github.com/vvka-141/shipload/pkg/shipload"
)

func TestJoinLoader_ResolvesLocations(t *testing.T) {
	files := newFiles(map[string]string{
		locationsCSV: locationsHeader + "X1,C,D\n",
		productsCSV:  productsHeader + "X1,Gadget,5\nX2,Gizmo,3\n",
	})
	logger := &captureLogger{}
	dst := &memoryInserter{}

	stats, err := NewJoinLoader(files, logger).Load(context.Background(), productsCSV, locationsCSV, dst)
	require.NoError(t, err)

	assert.Equal(t, []shipload.ShipmentRecord{
		{Origin: "C", Destination: "D", Product: "Gadget", Quantity: 5},
	}, dst.records)

	require.Len(t, logger.warnings, 1)
	assert.Contains(t, logger.warnings[0], "'X2'")
	assert.Contains(t, logger.warnings[0], `"Gizmo"`)

	require.Len(t, stats, 2)
	assert.Equal(t, productsCSV, stats[0].Source)
	assert.Equal(t, 2, stats[0].Rows)
	assert.Equal(t, 1, stats[0].Inserted)
	assert.Equal(t, 1, stats[0].Skipped[shipload.ReasonUnresolvedJoinKey])
	assert.Equal(t, locationsCSV, stats[1].Source)
	assert.Equal(t, 1, stats[1].Indexed)
	assert.Contains(t, logger.infos, "Successfully processed "+productsCSV+" and "+locationsCSV+".")
}

func TestJoinLoader_UnresolvedBeforeQuantity(t *testing.T) {
	files := newFiles(map[string]string{
		locationsCSV: locationsHeader + "X1,C,D\n",
		productsCSV:  productsHeader + "X9,Gizmo,abc\nX1,Gadget,abc\n",
	})
	logger := &captureLogger{}
	dst := &memoryInserter{}

	stats, err := NewJoinLoader(files, logger).Load(context.Background(), productsCSV, locationsCSV, dst)
	require.NoError(t, err)

	assert.Empty(t, dst.records)
	assert.Equal(t, 1, stats[0].Skipped[shipload.ReasonUnresolvedJoinKey])
	assert.Equal(t, 1, stats[0].Skipped[shipload.ReasonInvalidQuantity])
}

func TestJoinLoader_MalformedRowsInBothPasses(t *testing.T) {
	files := newFiles(map[string]string{
		locationsCSV: locationsHeader + "X1,C\nX2,E,F\n",
		productsCSV:  productsHeader + "X2,Gadget\nX2,Gizmo,4\nX1,Widget,1\n",
	})
	logger := &captureLogger{}
	dst := &memoryInserter{}

	stats, err := NewJoinLoader(files, logger).Load(context.Background(), productsCSV, locationsCSV, dst)
	require.NoError(t, err)

	assert.Equal(t, []shipload.ShipmentRecord{
		{Origin: "E", Destination: "F", Product: "Gizmo", Quantity: 4},
	}, dst.records)
	assert.Equal(t, 1, stats[1].Skipped[shipload.ReasonMalformedRow])
	assert.Equal(t, 1, stats[0].Skipped[shipload.ReasonMalformedRow])
	assert.Equal(t, 1, stats[0].Skipped[shipload.ReasonUnresolvedJoinKey])
	assert.Len(t, logger.warnings, 3)
}

func TestJoinLoader_DuplicateIdentifierLastWins(t *testing.T) {
	files := newFiles(map[string]string{
		locationsCSV: locationsHeader + "X1,C,D\nX1,E,F\n",
		productsCSV:  productsHeader + "X1,Gadget,5\n",
	})
	logger := &captureLogger{}
	dst := &memoryInserter{}

	stats, err := NewJoinLoader(files, logger).Load(context.Background(), productsCSV, locationsCSV, dst)
	require.NoError(t, err)

	require.Len(t, dst.records, 1)
	assert.Equal(t, "E", dst.records[0].Origin)
	assert.Equal(t, "F", dst.records[0].Destination)
	assert.Equal(t, 1, stats[1].Indexed)
	require.Len(t, logger.verbose, 3)
	assert.Contains(t, logger.verbose[0], "line 3 replaces line 2")
}

func TestJoinLoader_MissingLocationsAbortsJoin(t *testing.T) {
	files := newFiles(map[string]string{
		productsCSV: productsHeader + "X1,Gadget,5\n",
	})
	dst := &memoryInserter{}

	stats, err := NewJoinLoader(files, &captureLogger{}).Load(context.Background(), productsCSV, locationsCSV, dst)

	require.Error(t, err)
	assert.ErrorIs(t, err, shipload.ErrSourceMissing)
	assert.Contains(t, err.Error(), locationsCSV)
	assert.Empty(t, dst.records)
	require.Len(t, stats, 1)
	assert.True(t, stats[0].Missing)
	assert.Zero(t, files.OpenCount(productsCSV), "products must not be read")
}

func TestJoinLoader_MissingProducts(t *testing.T) {
	files := newFiles(map[string]string{
		locationsCSV: locationsHeader + "X1,C,D\n",
	})
	dst := &memoryInserter{}

	stats, err := NewJoinLoader(files, &captureLogger{}).Load(context.Background(), productsCSV, locationsCSV, dst)

	require.Error(t, err)
	assert.ErrorIs(t, err, shipload.ErrSourceMissing)
	assert.Empty(t, dst.records)
	require.Len(t, stats, 2)
	assert.True(t, stats[0].Missing)
	assert.False(t, stats[1].Missing)
	assert.Equal(t, 1, stats[1].Indexed)
}

func TestBuildIndex(t *testing.T) {
	files := newFiles(map[string]string{
		locationsCSV: locationsHeader + "X1,C,D\nX2,E,F\n",
	})

	index, stats, err := NewJoinLoader(files, &captureLogger{}).BuildIndex(context.Background(), locationsCSV)
	require.NoError(t, err)

	assert.Equal(t, 2, index.Len())
	assert.Equal(t, 2, stats.Rows)

	loc, ok := index.Lookup("X2")
	require.True(t, ok)
	assert.Equal(t, Location{Origin: "E", Destination: "F", Line: 3}, loc)

	_, ok = index.Lookup("x2")
	assert.False(t, ok, "identifiers are case sensitive")
}

func TestLocationIndex_NilIsEmpty(t *testing.T) {
	var index *LocationIndex
	assert.Zero(t, index.Len())
	_, ok := index.Lookup("X1")
	assert.False(t, ok)
}

func TestLoadProducts_EmptyIndexSkipsEverything(t *testing.T) {
	files := filesystem.NewMemoryFileSystem()
	files.AddFile(productsCSV, productsHeader+"X1,Gadget,5\n")
	dst := &memoryInserter{}

	stats, err := NewJoinLoader(files, &captureLogger{}).
		LoadProducts(context.Background(), productsCSV, &LocationIndex{}, dst)
	require.NoError(t, err)

	assert.Empty(t, dst.records)
	assert.Equal(t, 1, stats.Skipped[shipload.ReasonUnresolvedJoinKey])
}
