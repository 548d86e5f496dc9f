package floord

import "github.com/pkg/errors"

var (
	// ErrInputDecode indicates that the input bytes could not be decoded
	// into a raster.
	ErrInputDecode = errors.New("cannot decode input")

	// ErrEmptyResult indicates that no geometry survived the pipeline, so
	// there is nothing to export.
	ErrEmptyResult = errors.New("no geometry produced")

	// ErrExport indicates a failure serializing or writing an asset.
	ErrExport = errors.New("export failed")

	ErrInvalidConfig = errors.New("invalid configuration")
)
