package logging

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans each write out to every writer and keeps going past failures.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	cw.Writers = append(cw.Writers, writers...)
	return cw
}

// Write reports len(p) when at least one writer succeeded.
func (cw CombinedWriter) Write(p []byte) (int, error) {
	var err error
	ok := false
	for _, w := range cw.Writers {
		if _, werr := w.Write(p); werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		ok = true
	}
	if ok {
		return len(p), err
	}
	return 0, err
}
