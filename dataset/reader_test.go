package dataset

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/dta/errs"
	"github.com/arloliu/dta/format"
	"github.com/arloliu/dta/internal/dtatest"
)

// countingSeeker records Seek calls made through it.
type countingSeeker struct {
	*bytes.Reader
	seeks []int64
}

func (c *countingSeeker) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekCurrent || offset != 0 {
		c.seeks = append(c.seeks, offset)
	}

	return c.Reader.Seek(offset, whence)
}

func newCounting(data []byte) *countingSeeker {
	return &countingSeeker{Reader: bytes.NewReader(data)}
}

func autoBuilder() *dtatest.Builder {
	return &dtatest.Builder{
		Version:   114,
		Label:     "1978 Automobile Data",
		Timestamp: "13 Apr 2008 17:45",
		Columns: []dtatest.Column{
			{Name: "make", Code: 18, Sort: 1, Format: "%-18s", VariableLabel: "Make and Model"},
			{Name: "price", Code: format.CodeInt16, Format: "%8.0gc", VariableLabel: "Price"},
			{Name: "mpg", Code: format.CodeInt8, Format: "%8.0g", VariableLabel: "Mileage (mpg)"},
			{Name: "foreign", Code: format.CodeInt8, Format: "%8.0g", ValueLabel: "origin", VariableLabel: "Car type"},
			{Name: "weight", Code: format.CodeFloat64, Format: "%9.0g"},
		},
		Rows: [][]any{
			{"AMC Concord", int16(4099), int8(22), int8(0), 2930.0},
			{"AMC Pacer", int16(4749), int8(17), int8(0), 3350.0},
			{"Audi 5000", int16(9690), int8(101), int8(1), 2830.0},
			{"BMW 320i", int16(9735), int8(25), int8(1), 9e307},
		},
	}
}

func numericBuilder() *dtatest.Builder {
	return &dtatest.Builder{
		BigEndian: true,
		Columns: []dtatest.Column{
			{Name: "id", Code: format.CodeInt32},
			{Name: "score", Code: format.CodeFloat32},
		},
		Rows: [][]any{
			{int32(1), float32(0.5)},
			{int32(2), float32(1.5)},
			{int32(2147483621), float32(2.5)},
		},
	}
}

func TestNewReader_HeaderAccessors(t *testing.T) {
	b := autoBuilder()
	r, err := NewReader(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)

	require.Equal(t, format.Version114, r.FormatVersion())
	require.Equal(t, "1978 Automobile Data", r.Label())
	require.Equal(t, "13 Apr 2008 17:45", r.Timestamp())
	require.Equal(t, format.LittleEndian, r.Header().ByteOrder)
	require.Equal(t, 5, r.Header().ColumnCount)
	require.Equal(t, 4, r.Len())
	require.Equal(t, int64(len(b.Header())), r.DataOffset())
	require.Equal(t, []int{18, 2, 1, 1, 8}, r.Widths())
	require.Equal(t, 30, r.Stride())
}

func TestReader_Schema(t *testing.T) {
	r, err := NewReader(bytes.NewReader(autoBuilder().Bytes()))
	require.NoError(t, err)

	schema := r.Schema()
	require.Len(t, schema, 5)
	require.Equal(t, Variable{
		Index:     0,
		Type:      format.StringType(18),
		Name:      "make",
		SortOrder: 1,
		Format:    "%-18s",
		Label:     "Make and Model",
	}, schema[0])
	require.Equal(t, Variable{
		Index:      3,
		Type:       format.NumericType(format.KindInt8),
		Name:       "foreign",
		Format:     "%8.0g",
		ValueLabel: "origin",
		Label:      "Car type",
	}, schema[3])

	for i, v := range schema {
		require.Equal(t, i, v.Index)
	}
	require.Equal(t, "price", schema[1].String())
	require.Equal(t, []string{"make", "price", "mpg", "foreign", "weight"}, r.Names())
}

func TestReader_ColumnIndex(t *testing.T) {
	r, err := NewReader(bytes.NewReader(autoBuilder().Bytes()))
	require.NoError(t, err)

	idx, ok := r.ColumnIndex("mpg")
	require.True(t, ok)
	require.Equal(t, 2, idx)

	_, ok = r.ColumnIndex("displacement")
	require.False(t, ok)
}

func TestReader_Rows(t *testing.T) {
	t.Run("suppressed missing values", func(t *testing.T) {
		r, err := NewReader(bytes.NewReader(autoBuilder().Bytes()))
		require.NoError(t, err)

		var got []Record
		for rec, err := range r.Rows() {
			require.NoError(t, err)
			got = append(got, rec)
		}

		require.Equal(t, []Record{
			{"AMC Concord", int16(4099), int8(22), int8(0), 2930.0},
			{"AMC Pacer", int16(4749), int8(17), int8(0), 3350.0},
			{"Audi 5000", int16(9690), nil, int8(1), 2830.0},
			{"BMW 320i", int16(9735), int8(25), int8(1), nil},
		}, got)
	})

	t.Run("retained missing values", func(t *testing.T) {
		r, err := NewReader(bytes.NewReader(autoBuilder().Bytes()), WithMissingValues(true))
		require.NoError(t, err)

		var got []Record
		for rec, err := range r.Rows() {
			require.NoError(t, err)
			got = append(got, rec)
		}

		require.Len(t, got, 4)
		require.Equal(t, format.MissingValue{Kind: format.KindInt8, Bound: 100, Raw: 101}, got[2][2])
		require.Equal(t, ".", got[2][2].(format.MissingValue).String())
		require.Equal(t, format.MissingValue{Kind: format.KindFloat64, Bound: 8.988e307, Raw: 9e307}, got[3][4])
	})

	t.Run("restartable", func(t *testing.T) {
		r, err := NewReader(bytes.NewReader(numericBuilder().Bytes()))
		require.NoError(t, err)

		collect := func() []Record {
			var out []Record
			for rec, err := range r.Rows() {
				require.NoError(t, err)
				out = append(out, rec)
			}

			return out
		}

		first := collect()
		second := collect()
		require.Len(t, first, 3)
		require.Equal(t, first, second)
		require.Equal(t, Record{int32(1), float32(0.5)}, first[0])
		require.Equal(t, Record{nil, float32(2.5)}, first[2])
	})

	t.Run("early break", func(t *testing.T) {
		r, err := NewReader(bytes.NewReader(numericBuilder().Bytes()))
		require.NoError(t, err)

		count := 0
		for _, err := range r.Rows() {
			require.NoError(t, err)
			count++
			if count == 2 {
				break
			}
		}
		require.Equal(t, 2, count)
	})

	t.Run("truncated data", func(t *testing.T) {
		data := numericBuilder().Bytes()
		r, err := NewReader(bytes.NewReader(data[:len(data)-3]))
		require.NoError(t, err)

		var recs int
		var lastErr error
		for rec, err := range r.Rows() {
			if err != nil {
				require.Nil(t, rec)
				lastErr = err
				continue
			}
			recs++
		}
		require.Equal(t, 2, recs)
		require.ErrorIs(t, lastErr, errs.ErrTruncatedStream)
	})
}

func TestReader_RowMaps(t *testing.T) {
	r, err := NewReader(bytes.NewReader(autoBuilder().Bytes()))
	require.NoError(t, err)

	var got []map[string]any
	for m, err := range r.RowMaps() {
		require.NoError(t, err)
		got = append(got, m)
	}

	require.Len(t, got, 4)
	require.Equal(t, map[string]any{
		"make":    "AMC Concord",
		"price":   int16(4099),
		"mpg":     int8(22),
		"foreign": int8(0),
		"weight":  2930.0,
	}, got[0])
	require.Nil(t, got[2]["mpg"])
	require.Contains(t, got[2], "mpg")
}

func TestReader_RowCountNotCorrected(t *testing.T) {
	b := numericBuilder()
	b.RowCount = dtatest.Int32(10)

	r, err := NewReader(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 10, r.Len())

	_, err = r.At(9)
	require.ErrorIs(t, err, errs.ErrTruncatedStream)

	rec, err := r.At(1)
	require.NoError(t, err)
	require.Equal(t, Record{int32(2), float32(1.5)}, rec)
}

func TestReader_At(t *testing.T) {
	t.Run("random order", func(t *testing.T) {
		r, err := NewReader(bytes.NewReader(autoBuilder().Bytes()))
		require.NoError(t, err)

		rec, err := r.At(3)
		require.NoError(t, err)
		require.Equal(t, "BMW 320i", rec[0])

		rec, err = r.At(0)
		require.NoError(t, err)
		require.Equal(t, "AMC Concord", rec[0])

		rec, err = r.At(2)
		require.NoError(t, err)
		require.Equal(t, "Audi 5000", rec[0])
		require.Nil(t, rec[2])
	})

	t.Run("idempotent", func(t *testing.T) {
		r, err := NewReader(bytes.NewReader(autoBuilder().Bytes()), WithMissingValues(true))
		require.NoError(t, err)

		first, err := r.At(2)
		require.NoError(t, err)
		for range 5 {
			again, err := r.At(2)
			require.NoError(t, err)
			require.Equal(t, first, again)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		r, err := NewReader(bytes.NewReader(autoBuilder().Bytes()))
		require.NoError(t, err)

		for _, idx := range []int{-1, 4, 100} {
			_, err := r.At(idx)
			require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
		}
	})

	t.Run("matches sequential iteration", func(t *testing.T) {
		r, err := NewReader(bytes.NewReader(autoBuilder().Bytes()), WithMissingValues(true))
		require.NoError(t, err)

		var seq []Record
		for rec, err := range r.Rows() {
			require.NoError(t, err)
			seq = append(seq, rec)
		}

		for i := len(seq) - 1; i >= 0; i-- {
			rec, err := r.At(i)
			require.NoError(t, err)
			require.Equal(t, seq[i], rec)
		}
	})
}

func TestReader_AtSeeks(t *testing.T) {
	b := numericBuilder()
	cs := newCounting(b.Bytes())
	r, err := NewReader(cs)
	require.NoError(t, err)
	require.Empty(t, cs.seeks, "parsing must not seek")

	t.Run("forward walk does not seek", func(t *testing.T) {
		for i := 0; i < r.Len(); i++ {
			_, err := r.At(i)
			require.NoError(t, err)
		}
		require.Empty(t, cs.seeks)
	})

	t.Run("stride between observations", func(t *testing.T) {
		cs.seeks = nil
		_, err := r.At(1)
		require.NoError(t, err)
		_, err = r.At(0)
		require.NoError(t, err)
		_, err = r.At(2)
		require.NoError(t, err)

		stride := int64(r.Stride())
		require.Equal(t, []int64{
			r.DataOffset() + stride,
			r.DataOffset(),
			r.DataOffset() + 2*stride,
		}, cs.seeks)
	})

	t.Run("failed bounds check does not seek", func(t *testing.T) {
		cs.seeks = nil
		pos, err := cs.Reader.Seek(0, io.SeekCurrent)
		require.NoError(t, err)

		_, err = r.At(3)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
		_, err = r.At(-1)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

		after, err := cs.Reader.Seek(0, io.SeekCurrent)
		require.NoError(t, err)
		require.Equal(t, pos, after)
		require.Empty(t, cs.seeks)
	})

	t.Run("rows always reseeks", func(t *testing.T) {
		cs.seeks = nil
		for range r.Rows() {
			break
		}
		require.Equal(t, []int64{r.DataOffset()}, cs.seeks)
	})
}

func TestReader_NonZeroStart(t *testing.T) {
	b := numericBuilder()
	prefix := []byte("junk-before-file")
	data := append(append([]byte{}, prefix...), b.Bytes()...)

	rs := bytes.NewReader(data)
	_, err := rs.Seek(int64(len(prefix)), io.SeekStart)
	require.NoError(t, err)

	r, err := NewReader(rs)
	require.NoError(t, err)
	require.Equal(t, int64(len(prefix)+len(b.Header())), r.DataOffset())

	rec, err := r.At(1)
	require.NoError(t, err)
	require.Equal(t, Record{int32(2), float32(1.5)}, rec)
}

func TestReader_EmptySchema(t *testing.T) {
	t.Run("zero columns", func(t *testing.T) {
		b := &dtatest.Builder{RowCount: dtatest.Int32(2)}
		r, err := NewReader(bytes.NewReader(b.Bytes()))
		require.NoError(t, err)

		require.Empty(t, r.Schema())
		require.Equal(t, 0, r.Stride())
		require.Equal(t, 2, r.Len())

		rec, err := r.At(1)
		require.NoError(t, err)
		require.Empty(t, rec)
	})

	t.Run("negative counts", func(t *testing.T) {
		b := &dtatest.Builder{ColumnCount: dtatest.Int16(-1), RowCount: dtatest.Int32(-5)}
		r, err := NewReader(bytes.NewReader(b.Bytes()))
		require.NoError(t, err)

		require.Equal(t, -1, r.Header().ColumnCount)
		require.Empty(t, r.Schema())
		require.Equal(t, -5, r.Len())

		count := 0
		for range r.Rows() {
			count++
		}
		require.Zero(t, count)

		_, err = r.At(0)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	})
}

func TestNewReader_Errors(t *testing.T) {
	t.Run("truncated header", func(t *testing.T) {
		data := autoBuilder().Header()
		_, err := NewReader(bytes.NewReader(data[:200]))
		require.ErrorIs(t, err, errs.ErrTruncatedStream)
	})

	t.Run("unsupported type", func(t *testing.T) {
		b := autoBuilder()
		b.Rows = nil
		b.Columns[1].Code = 253
		_, err := NewReader(bytes.NewReader(b.Header()))
		require.ErrorIs(t, err, errs.ErrUnsupportedColumnType)
	})

	t.Run("unknown charset", func(t *testing.T) {
		_, err := NewReader(bytes.NewReader(autoBuilder().Bytes()), WithCharset("klingon-8"))
		require.ErrorIs(t, err, errs.ErrUnknownCharset)
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewReader(bytes.NewReader(autoBuilder().Bytes()), WithLogger(nil))
		require.Error(t, err)
	})

	t.Run("seek failure", func(t *testing.T) {
		_, err := NewReader(failingSeeker{})
		require.Error(t, err)
	})
}

var errNoSeek = errors.New("seek not supported")

type failingSeeker struct{}

func (failingSeeker) Read([]byte) (int, error)        { return 0, io.EOF }
func (failingSeeker) Seek(int64, int) (int64, error) { return 0, errNoSeek }

func TestReader_Charset(t *testing.T) {
	b := &dtatest.Builder{
		Label:   "Donn\xe9es",
		Columns: []dtatest.Column{{Name: "ville", Code: 10, VariableLabel: "Ville d'\xe9t\xe9"}},
		Rows:    [][]any{{"Orl\xe9ans"}},
	}

	raw, err := NewReader(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)
	require.Equal(t, "Donn\xe9es", raw.Label())

	r, err := NewReader(bytes.NewReader(b.Bytes()), WithCharset("ISO-8859-1"))
	require.NoError(t, err)
	require.Equal(t, "Données", r.Label())
	require.Equal(t, "Ville d'été", r.Schema()[0].Label)

	rec, err := r.At(0)
	require.NoError(t, err)
	require.Equal(t, Record{"Orléans"}, rec)
}

func TestReader_Logger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r, err := NewReader(bytes.NewReader(numericBuilder().Bytes()), WithLogger(logger))
	require.NoError(t, err)
	_, err = r.At(2)
	require.NoError(t, err)

	out := logs.String()
	require.Contains(t, out, "parsed dataset header")
	require.Contains(t, out, "dataset reader ready")
	require.Contains(t, out, "seek")
}

func TestReader_DuplicateNames(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	b := &dtatest.Builder{
		Columns: []dtatest.Column{
			{Name: "x", Code: format.CodeInt8},
			{Name: "x", Code: format.CodeInt16},
		},
		Rows: [][]any{{int8(1), int16(2)}},
	}

	r, err := NewReader(bytes.NewReader(b.Bytes()), WithLogger(logger))
	require.NoError(t, err)
	require.Contains(t, logs.String(), "duplicate variable names")

	idx, ok := r.ColumnIndex("x")
	require.True(t, ok)
	require.Equal(t, 0, idx)

	for m, err := range r.RowMaps() {
		require.NoError(t, err)
		require.Equal(t, map[string]any{"x": int16(2)}, m)
	}
}
