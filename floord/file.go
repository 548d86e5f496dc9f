package floord

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Save creates a file and writes obj to it with an encoder function.
func Save[T any](path string, obj T, f func(w io.Writer, obj T) error) (err error) {
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "save "+path)
		}
	}()
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()
	w := bufio.NewWriter(file)
	if err := f(w, obj); err != nil {
		return err
	}
	return w.Flush()
}

// Load opens a file and decodes it with a decoder function.
func Load[T any](path string, f func(r io.Reader) (T, error)) (T, error) {
	file, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, errors.Wrap(err, "load "+path)
	}
	defer file.Close()
	obj, err := f(bufio.NewReader(file))
	if err != nil {
		return obj, errors.Wrap(err, "load "+path)
	}
	return obj, nil
}
