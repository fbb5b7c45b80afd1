package section

// Fixed on-disk widths of the header and descriptor fields, in bytes.
const (
	VersionSize     = 1  // format version byte
	ByteOrderSize   = 1  // byte order marker
	FileTypeSize    = 1  // file type byte
	PaddingSize     = 1  // unused byte after the file type
	ColumnCountSize = 2  // int16 number of variables
	RowCountSize    = 4  // int32 number of observations
	LabelSize       = 81 // dataset label, NUL padded
	TimestampSize   = 18 // save timestamp, NUL padded

	// FixedHeaderSize is the size of the header before the descriptor arrays.
	FixedHeaderSize = VersionSize + ByteOrderSize + FileTypeSize + PaddingSize +
		ColumnCountSize + RowCountSize + LabelSize + TimestampSize

	TypeCodeSize      = 1  // per-column type code
	NameSize          = 33 // per-column variable name
	SortEntrySize     = 2  // per-column int16 sort priority, plus one trailing entry
	ValueLabelSize    = 33 // per-column value label table name
	VariableLabelSize = 81 // per-column variable label

	ExpansionTagSize    = 1 // int8 expansion field type
	ExpansionLengthSize = 4 // int32 expansion field length

	// ExpansionFieldHeaderSize is the size of one expansion field header, terminator included.
	ExpansionFieldHeaderSize = ExpansionTagSize + ExpansionLengthSize
)
