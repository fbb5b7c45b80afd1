package encoding

import (
	"testing"

	"github.com/arloliu/dta/endian"
	"github.com/arloliu/dta/format"
	"github.com/stretchr/testify/require"
)

func TestWidthResolver(t *testing.T) {
	types := []format.ColumnType{
		format.NumericType(format.KindInt8),
		format.NumericType(format.KindInt16),
		format.NumericType(format.KindInt32),
		format.NumericType(format.KindFloat32),
		format.NumericType(format.KindFloat64),
		format.StringType(17),
		format.StringType(0),
	}

	for _, engine := range []endian.EndianEngine{endian.GetBigEndianEngine(), endian.GetLittleEndianEngine()} {
		w := NewWidthResolver(types, engine)

		require.Equal(t, []int{1, 2, 4, 4, 8, 17, 0}, w.Widths())
		require.Equal(t, []int{0, 1, 3, 7, 11, 19, 36}, w.Offsets())
		require.Equal(t, 36, w.Stride())
		require.Equal(t, 8, w.Width(4))
		require.Equal(t, 17, w.Width(5))
		require.Equal(t, engine, w.Engine())
	}
}

func TestWidthResolver_Cached(t *testing.T) {
	w := NewWidthResolver([]format.ColumnType{format.StringType(3)}, endian.GetLittleEndianEngine())

	first := w.Widths()
	second := w.Widths()
	require.True(t, &first[0] == &second[0], "width table must be computed once")
}

func TestWidthResolver_Empty(t *testing.T) {
	w := NewWidthResolver(nil, endian.GetLittleEndianEngine())

	require.Empty(t, w.Widths())
	require.Equal(t, 0, w.Stride())
	require.Panics(t, func() { w.Width(0) })
}
