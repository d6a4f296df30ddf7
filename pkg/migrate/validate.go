package migrate

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pressly/goose/v3"
)

var migrationFileRe = regexp.MustCompile(`^\d{14}_[a-z0-9_]+\.sql$`)

var requiredAnnotations = []string{"-- +goose Up", "-- +goose Down"}

// ValidateDir checks that every SQL file in dir follows the
// YYYYMMDDHHMMSS_name.sql convention, carries both goose sections and that
// goose can order the set without version clashes.
func ValidateDir(dir string) error {
	if dir == "" {
		return errors.New("dir is required")
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("list migrations in %q: %w", dir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations found in %q", dir)
	}

	for _, path := range files {
		if err := checkMigrationFile(path); err != nil {
			return err
		}
	}

	if _, err := goose.CollectMigrations(dir, 0, math.MaxInt64); err != nil {
		return fmt.Errorf("collect migrations: %w", err)
	}
	return nil
}

func checkMigrationFile(path string) error {
	name := filepath.Base(path)
	if !migrationFileRe.MatchString(name) {
		return fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}
	for _, annotation := range requiredAnnotations {
		if !strings.Contains(string(body), annotation) {
			return fmt.Errorf("migration %q missing %q", name, annotation)
		}
	}
	return nil
}
