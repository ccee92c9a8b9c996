package services

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"sway-pr/internal/models"
	"sway-pr/internal/utils"
	"unicode/utf8"

	"github.com/axgle/mahonia"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DelimitedFile is a parsed comma-separated upload.
type DelimitedFile struct {
	Headers []string
	Rows    [][]string
}

// HeaderIndex maps each header to its first column position.
func (f *DelimitedFile) HeaderIndex() map[string]int {
	index := make(map[string]int, len(f.Headers))
	for i, h := range f.Headers {
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}
	return index
}

// DecodeText strips a UTF-8 byte order mark and converts text in other
// encodings to UTF-8. Undetectable input is read as Windows-1252.
func DecodeText(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}

	charset := ""
	if result, err := chardet.NewTextDetector().DetectBest(data); err == nil {
		charset = result.Charset
	}

	if charset != "" {
		if enc, err := htmlindex.Get(charset); err == nil {
			if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
				return string(bytes.TrimPrefix(decoded, utf8BOM))
			}
		}
		if dec := mahonia.NewDecoder(charset); dec != nil {
			return dec.ConvertString(string(data))
		}
		utils.LogDebug("no decoder for detected charset %s, falling back to windows-1252", charset)
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

func newCSVReader(text string) *csv.Reader {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

func readHeader(reader *csv.Reader) ([]string, error) {
	record, err := reader.Read()
	if err == io.EOF {
		return nil, models.NewError(models.KindMalformedInput, "the file is empty")
	}
	if err != nil {
		return nil, models.WrapError(models.KindMalformedInput, err, "the file could not be parsed as CSV")
	}
	if len(record) == 0 {
		return nil, models.NewError(models.KindMalformedInput, "the header row has no columns")
	}

	headers := make([]string, len(record))
	for i, h := range record {
		headers[i] = strings.TrimSpace(h)
	}
	return headers, nil
}

// ReadHeaders returns the trimmed header names of the first row.
func ReadHeaders(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, models.WrapError(models.KindMalformedInput, err, "the file could not be read")
	}
	return readHeader(newCSVReader(DecodeText(data)))
}

// ReadDelimited parses the header row and every data row. Rows keep
// their own length; callers decide how to treat ragged rows.
func ReadDelimited(r io.Reader) (*DelimitedFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, models.WrapError(models.KindMalformedInput, err, "the file could not be read")
	}

	reader := newCSVReader(DecodeText(data))
	headers, err := readHeader(reader)
	if err != nil {
		return nil, err
	}

	file := &DelimitedFile{Headers: headers}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, models.WrapError(models.KindMalformedInput, err, "the file could not be parsed as CSV")
		}
		file.Rows = append(file.Rows, record)
	}
	return file, nil
}
