package chunk

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strconv"
)

// DefaultChunkSize is the initial serving window. Both branches of Window
// overwrite it, so in practice every response is sized by the request.
const DefaultChunkSize = 100 * 1024

var ErrFileNotFound = errors.New("video file not found")

// Chunk is an open window of a video file. The bytes are not loaded;
// they are streamed from the file by WriteTo. Close releases the file.
type Chunk struct {
	Start     int64
	Length    int64
	TotalSize int64

	file *os.File
}

// ContentRange returns the value of the Content-Range response header.
func (c *Chunk) ContentRange() string {
	if c.Length == 0 {
		return fmt.Sprintf("bytes */%d", c.TotalSize)
	}

	return fmt.Sprintf("bytes %d-%d/%d", c.Start, c.Start+c.Length-1, c.TotalSize)
}

// Window computes the served interval for a file of totalSize bytes.
// Out of range starts fall back to 0 and the length never runs past EOF.
func Window(rng Range, totalSize int64) (start int64, length int64) {
	length = DefaultChunkSize

	if rng.Start >= 0 && rng.Start < totalSize {
		start = rng.Start
	}

	if rng.HasEnd {
		length = rng.End + 1 - start
	} else {
		length = totalSize - start
	}

	// end before start or past EOF
	if rest := totalSize - start; length <= 0 || length > rest {
		length = rest
	}

	return
}

// Read stats the file at path and opens the window selected by rng.
// Every call stats the file again. The caller must Close the chunk.
func Read(path string, rng Range) (*Chunk, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("unable to stat %s: %w", path, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)
	}

	totalSize := info.Size()
	start, length := Window(rng, totalSize)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}

	return &Chunk{
		Start:     start,
		Length:    length,
		TotalSize: totalSize,
		file:      f,
	}, nil
}

// Reader returns the window contents. Every call starts at the window start.
func (c *Chunk) Reader() io.Reader {
	if c.file == nil {
		return bytes.NewReader(nil)
	}
	return io.NewSectionReader(c.file, c.Start, c.Length)
}

// WriteTo copies the window to w. A file that shrunk after Read
// yields io.EOF together with the bytes that were still there.
func (c *Chunk) WriteTo(w io.Writer) (int64, error) {
	return io.CopyN(w, c.Reader(), c.Length)
}

func (c *Chunk) Close() error {
	if c.file == nil {
		return nil
	}
	return c.file.Close()
}

// Header writes the partial content response headers. The status is
// always 206, also when the client did not send a Range header.
func Header(w http.ResponseWriter, c *Chunk, contentType string) {
	header := w.Header()
	header.Set("Content-Type", contentType)
	header.Set("Content-Range", c.ContentRange())
	header.Set("Content-Length", strconv.FormatInt(c.Length, 10))
	w.WriteHeader(http.StatusPartialContent)
}
