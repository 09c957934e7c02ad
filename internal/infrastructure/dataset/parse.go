package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/DRSN-tech/go-recommender/pkg/e"
)

// Колонки styles.csv
const (
	colID          = "id"
	colGender      = "gender"
	colCategory    = "masterCategory"
	colSubCategory = "subCategory"
	colArticleType = "articleType"
	colBaseColour  = "baseColour"
	colSeason      = "season"
	colYear        = "year"
	colUsage       = "usage"
	colName        = "productDisplayName"

	colFilename = "filename"
	colLink     = "link"
)

var requiredStyleColumns = []string{colID, colGender, colCategory, colSubCategory, colBaseColour, colSeason, colYear, colUsage, colName}

// ParseStats — число прочитанных и пропущенных строк.
type ParseStats struct {
	Rows    int
	Skipped int
}

// ParseStyles читает метаданные товаров. Строки, число полей которых отличается от заголовка,
// и строки с синтаксическими ошибками пропускаются. Отсутствие обязательной колонки — ошибка.
func ParseStyles(r io.Reader) ([]domain.StyleRow, ParseStats, error) {
	var stats ParseStats

	cr := newCSVReader(r)
	header, err := readHeader(cr)
	if err != nil {
		return nil, stats, err
	}

	cols, err := columnIndex(header, requiredStyleColumns...)
	if err != nil {
		return nil, stats, err
	}
	articleType, hasArticleType := indexOf(header, colArticleType)

	rows := make([]domain.StyleRow, 0)
	err = eachRecord(cr, len(header), &stats, func(rec []string) {
		row := domain.StyleRow{
			ID:          field(rec, cols[colID]),
			Gender:      field(rec, cols[colGender]),
			Category:    field(rec, cols[colCategory]),
			SubCategory: field(rec, cols[colSubCategory]),
			BaseColour:  field(rec, cols[colBaseColour]),
			Season:      field(rec, cols[colSeason]),
			Usage:       field(rec, cols[colUsage]),
			Year:        field(rec, cols[colYear]),
			Name:        field(rec, cols[colName]),
		}
		if hasArticleType {
			row.ArticleType = field(rec, articleType)
		}
		rows = append(rows, row)
	})
	if err != nil {
		return nil, stats, err
	}

	return rows, stats, nil
}

// ParseImageLinks читает соответствие имени файла изображения и внешней ссылки.
// При повторе имени файла побеждает последняя строка.
func ParseImageLinks(r io.Reader) (map[string]string, ParseStats, error) {
	var stats ParseStats

	cr := newCSVReader(r)
	header, err := readHeader(cr)
	if err != nil {
		return nil, stats, err
	}

	cols, err := columnIndex(header, colFilename, colLink)
	if err != nil {
		return nil, stats, err
	}

	links := make(map[string]string)
	err = eachRecord(cr, len(header), &stats, func(rec []string) {
		name := field(rec, cols[colFilename])
		link := field(rec, cols[colLink])
		if name == "" || link == "" {
			stats.Skipped++
			return
		}
		links[name] = link
	})
	if err != nil {
		return nil, stats, err
	}

	return links, stats, nil
}

// ParseFeatures читает матрицу эмбеддингов: одна строка CSV — один вектор float32.
// В отличие от метаданных, повреждённая матрица не допускает пропусков строк.
func ParseFeatures(r io.Reader) ([][]float32, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0
	cr.ReuseRecord = true

	vectors := make([][]float32, 0)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				return nil, fmt.Errorf("features row %d: %w", line, e.ErrDimensionMismatch)
			}
			return nil, fmt.Errorf("features row %d: %w", line, err)
		}

		vector := make([]float32, len(rec))
		for i, raw := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
			if err != nil {
				return nil, fmt.Errorf("features row %d column %d: %w", line, i+1, err)
			}
			vector[i] = float32(v)
		}
		vectors = append(vectors, vector)
	}

	return vectors, nil
}

// ParseFilenames читает список ссылок на изображения, параллельный матрице эмбеддингов.
func ParseFilenames(r io.Reader) ([]string, error) {
	refs := make([]string, 0)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		ref := strings.TrimSpace(sc.Text())
		if ref == "" {
			continue
		}
		refs = append(refs, ref)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

func readHeader(cr *csv.Reader) ([]string, error) {
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, e.ErrEmptyDataset
	}
	if err != nil {
		return nil, err
	}

	res := make([]string, len(header))
	for i, h := range header {
		res[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	return res, nil
}

// eachRecord передаёт в fn корректные записи и считает пропущенные.
func eachRecord(cr *csv.Reader, width int, stats *ParseStats, fn func(rec []string)) error {
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			stats.Skipped++
			continue
		}
		if err != nil {
			return err
		}

		if len(rec) != width {
			stats.Skipped++
			continue
		}

		stats.Rows++
		fn(rec)
	}
}

func columnIndex(header []string, names ...string) (map[string]int, error) {
	cols := make(map[string]int, len(names))
	for _, name := range names {
		i, ok := indexOf(header, name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", e.ErrMissingColumn, name)
		}
		cols[name] = i
	}

	return cols, nil
}

func indexOf(header []string, name string) (int, bool) {
	for i, h := range header {
		if h == name {
			return i, true
		}
	}

	return 0, false
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}

	return strings.TrimSpace(rec[i])
}
