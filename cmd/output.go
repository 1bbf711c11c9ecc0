package cmd

import (
	"fmt"
	"io"

	"github.com/MichaelHoltonPrice/pyseshat/internal/utils"
)

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	b, err := utils.PrettyJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// emit writes body to path atomically when path is set, otherwise to w.
func emit(w io.Writer, path string, body []byte) error {
	if path == "" {
		_, err := w.Write(body)
		return err
	}
	if err := utils.SafeWriteFile(path, body); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(w, "✓ Wrote %s\n", path)
	return nil
}
