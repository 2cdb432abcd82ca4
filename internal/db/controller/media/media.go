// Package media stores uploaded files on disk and records them in the database.
package media

import (
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/db/models"
	"github.com/authorsite/authorsite/internal/uniuri"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrMediaNotFound is returned when no file has the requested id.
	ErrMediaNotFound = errors.New("media file not found")
	// ErrFileTooLarge is returned when an upload exceeds the size limit.
	ErrFileTooLarge = errors.New("file is too large")
	// ErrFileEmpty is returned for uploads without content.
	ErrFileEmpty = errors.New("file is empty")
)

// documentTypes are the non media mime types classified as documents.
var documentTypes = []string{ //nolint:gochecknoglobals
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/epub+zip",
	"text/plain",
}

// Store persists uploaded files below Dir and serves them below URLPrefix.
type Store struct {
	DB        *gorm.DB
	Dir       string
	URLPrefix string
	MaxSize   int64
}

// Upload describes one incoming file.
type Upload struct {
	OriginalName string
	AltText      string
	Content      io.Reader
}

// Kind classifies a mime type as image, video, audio, document or other.
func Kind(mtype *mimetype.MIME) string {
	for m := mtype; m != nil; m = m.Parent() {
		switch {
		case strings.HasPrefix(m.String(), "image/"):
			return models.MediaKindImage
		case strings.HasPrefix(m.String(), "video/"):
			return models.MediaKindVideo
		case strings.HasPrefix(m.String(), "audio/"):
			return models.MediaKindAudio
		}
	}

	for _, doc := range documentTypes {
		if mtype.Is(doc) {
			return models.MediaKindDocument
		}
	}

	return models.MediaKindOther
}

// Save sniffs the content type of u, writes it under a random name and records it.
func (s *Store) Save(u Upload) (*models.MediaFile, error) {
	if s.DB == nil {
		return nil, ErrDBNil
	}

	r := u.Content
	if s.MaxSize > 0 {
		r = io.LimitReader(r, s.MaxSize+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, ErrFileEmpty
	}

	if s.MaxSize > 0 && int64(len(data)) > s.MaxSize {
		return nil, ErrFileTooLarge
	}

	mtype := mimetype.Detect(data)
	name := uniuri.NewFileName(mtype.Extension())

	if err = os.MkdirAll(s.Dir, 0o750); err != nil {
		return nil, err
	}

	target := filepath.Join(s.Dir, name)
	if err = os.WriteFile(target, data, 0o640); err != nil { //nolint:gosec // name is generated
		return nil, err
	}

	file := &models.MediaFile{
		Filename:     name,
		OriginalName: filepath.Base(u.OriginalName),
		FilePath:     path.Join("/", s.URLPrefix, name),
		FileSize:     int64(len(data)),
		MimeType:     mtype.String(),
		Kind:         Kind(mtype),
		AltText:      u.AltText,
	}

	if err = s.DB.Create(file).Error; err != nil {
		if rmErr := os.Remove(target); rmErr != nil {
			log.Warn().Err(rmErr).Str("file", target).Msg("can't remove orphaned upload")
		}

		return nil, err
	}

	return file, nil
}

// List returns stored files, newest first. An empty kind matches every file.
func (s *Store) List(kind string) ([]models.MediaFile, error) {
	if s.DB == nil {
		return nil, ErrDBNil
	}

	q := s.DB.Model(&models.MediaFile{})
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}

	var files []models.MediaFile
	if err := q.Order("created_at DESC").Order("id DESC").Find(&files).Error; err != nil {
		return nil, err
	}

	return files, nil
}

// Delete removes the record and the file on disk. A file already missing on disk is ignored.
func (s *Store) Delete(id uint64) error {
	if s.DB == nil {
		return ErrDBNil
	}

	var file models.MediaFile
	if err := s.DB.First(&file, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMediaNotFound
		}

		return err
	}

	if err := s.DB.Delete(&file).Error; err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.Dir, filepath.Base(file.Filename)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}
