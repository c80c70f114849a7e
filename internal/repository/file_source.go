package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"BubbleIndex/internal/domain/models"
)

// DefaultFiles maps each series to the file name the scraper historically wrote it to.
var DefaultFiles = map[models.SeriesName]string{
	models.SeriesPrice:            "price.txt",
	models.SeriesDifficulty:       "difficulty.txt",
	models.SeriesActiveAddresses:  "sentaddr.txt",
	models.SeriesTransactionValue: "transcation.txt",
	models.SeriesSearchTrend:      "gtrend.txt",
	models.SeriesSocialMentions:   "tweets.txt",
}

// FileSource reads raw series blobs from a directory.
type FileSource struct {
	dir   string
	files map[models.SeriesName]string
}

// NewFileSource returns a FileSource rooted at dir. Entries in files override DefaultFiles.
func NewFileSource(dir string, files map[models.SeriesName]string) *FileSource {
	return &FileSource{dir: dir, files: withDefaults(DefaultFiles, files)}
}

func (s *FileSource) Fetch(ctx context.Context, name models.SeriesName) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	file, ok := s.files[name]
	if !ok {
		return "", models.NewError(models.ErrDataUnavailable, name, -1, "no file configured")
	}
	path := filepath.Join(s.dir, file)
	b, err := os.ReadFile(path)
	if err != nil {
		return "", models.NewError(models.ErrDataUnavailable, name, -1, "read %s", path).WithCause(err)
	}
	return string(b), nil
}

// Path reports where name is read from.
func (s *FileSource) Path(name models.SeriesName) string {
	return filepath.Join(s.dir, s.files[name])
}

func (s *FileSource) String() string {
	return fmt.Sprintf("file:%s", s.dir)
}
