package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var ErrInvalidRef = errors.New("invalid ref name")

var refName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// WriteRef points name at hash, replacing any previous target.
func (s *Store) WriteRef(name, hash string) error {
	if !refName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidRef, name)
	}
	if _, err := s.objectPath(hash); err != nil {
		return err
	}

	path := filepath.Join(s.Root, RefsDir, name)
	tmp := path + ".tmp"
	if err := writeFileSync(tmp, []byte(hash+"\n")); err != nil {
		return fmt.Errorf("write ref %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename ref %s: %w", name, err)
	}
	return nil
}

func (s *Store) ReadRef(name string) (string, error) {
	if !refName.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, name)
	}

	data, err := os.ReadFile(filepath.Join(s.Root, RefsDir, name))
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("ref %s: %w", name, ErrNotFound)
	} else if err != nil {
		return "", fmt.Errorf("read ref %s: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Refs returns all ref names mapped to their digests.
func (s *Store) Refs() (map[string]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.Root, RefsDir))
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}

	refs := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), ".tmp") {
			continue
		}
		hash, err := s.ReadRef(e.Name())
		if err != nil {
			return nil, err
		}
		refs[e.Name()] = hash
	}
	return refs, nil
}

// RefNames returns the ref names in lexical order.
func RefNames(refs map[string]string) []string {
	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeFileSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("fsync failed: %w", err)
	}
	return nil
}
