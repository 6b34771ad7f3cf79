package pipeline

import (
	"io"
	"os"

	apperrors "github.com/matzehuels/tubemap/pkg/errors"
	tmio "github.com/matzehuels/tubemap/pkg/io"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

// Parse reads an input document from path. The format is taken from the
// file extension unless format is set. A path of "-" reads from stdin,
// which requires an explicit format or defaults to JSON.
func Parse(path, format string) (vgraph.Input, error) {
	f, err := resolveFormat(path, format)
	if err != nil {
		return vgraph.Input{}, err
	}
	if path == "-" {
		return ParseReader(os.Stdin, f)
	}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return vgraph.Input{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "input %s", path)
	}
	if err != nil {
		return vgraph.Input{}, err
	}
	defer file.Close()
	return ParseReader(file, f)
}

// ParseReader decodes an input document of the given format from r.
func ParseReader(r io.Reader, format tmio.Format) (vgraph.Input, error) {
	return tmio.ReadInput(r, format)
}

func resolveFormat(path, format string) (tmio.Format, error) {
	if format != "" {
		return tmio.ParseFormat(format)
	}
	if path == "-" {
		return tmio.FormatJSON, nil
	}
	return tmio.DetectFormat(path)
}
