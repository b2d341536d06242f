package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"mcq-server/models"
)

// LoadExamMeta reads the optional exam.yaml. A missing file yields the zero
// value; a malformed one is logged and also yields the zero value.
func LoadExamMeta(path string, log *zap.Logger) models.ExamMeta {
	meta, err := readExamMeta(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("ignoring exam metadata", zap.String("path", path), zap.Error(err))
		}
		return models.ExamMeta{}
	}
	return meta
}

func readExamMeta(path string) (models.ExamMeta, error) {
	var meta models.ExamMeta
	if path == "" {
		return meta, fs.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return meta, err
	}
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return meta, nil
}
