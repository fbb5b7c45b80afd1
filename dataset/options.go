package dataset

import (
	"errors"
	"log/slog"

	"github.com/arloliu/dta/internal/charset"
	"github.com/arloliu/dta/internal/options"
)

type readerConfig struct {
	emitMissing bool
	text        charset.Decoder
	logger      *slog.Logger
}

func newReaderConfig() *readerConfig {
	return &readerConfig{
		text:   charset.Raw(),
		logger: slog.New(slog.DiscardHandler),
	}
}

// ReaderOption represents a functional option for configuring a Reader.
type ReaderOption = options.Option[*readerConfig]

// WithMissingValues selects how numeric fields holding a missing-value sentinel are
// returned: as format.MissingValue when enabled, as nil otherwise (the default).
func WithMissingValues(enabled bool) ReaderOption {
	return options.NoError(func(c *readerConfig) {
		c.emitMissing = enabled
	})
}

// WithCharset converts every text field (labels, names, formats and string values)
// from the named legacy charset to UTF-8, e.g. "windows-1252" or "ISO-8859-1".
//
// By default text bytes are returned unchanged. An unrecognized name makes the
// constructor fail with errs.ErrUnknownCharset.
func WithCharset(name string) ReaderOption {
	return options.New(func(c *readerConfig) error {
		dec, err := charset.New(name)
		if err != nil {
			return err
		}
		c.text = dec

		return nil
	})
}

// WithLogger sets the logger receiving debug events. The default discards all output.
func WithLogger(logger *slog.Logger) ReaderOption {
	return options.New(func(c *readerConfig) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		c.logger = logger

		return nil
	})
}
