// Package store is a content-addressed archive of exported paths. Objects are
// sharded by the first two hex digits of their sha256 digest.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	RepoDir    = ".stochwalk"
	ObjectsDir = "objects"
	RefsDir    = "refs"
)

var (
	ErrNotInitialized = errors.New("store is not initialized")
	ErrNotFound       = errors.New("object not found")
	ErrAmbiguous      = errors.New("ambiguous object prefix")
	ErrInvalidHash    = errors.New("invalid object hash")
)

type Store struct {
	Root string
}

func New(projectRoot string) *Store {
	return &Store{
		Root: filepath.Join(projectRoot, RepoDir),
	}
}

// Open returns the store rooted at the current working directory.
func Open() (*Store, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("could not determine working directory: %w", err)
	}
	return New(cwd), nil
}

func (s *Store) Init() error {
	paths := []string{
		filepath.Join(s.Root, ObjectsDir),
		filepath.Join(s.Root, RefsDir),
	}

	for _, p := range paths {
		if err := os.MkdirAll(p, 0o0755); err != nil {
			return fmt.Errorf("failed to init store at %s: %w", p, err)
		}
	}
	return nil
}

func (s *Store) Exists() bool {
	info, err := os.Stat(s.Root)
	return err == nil && info.IsDir()
}

// Put writes data and returns its digest. Writing the same bytes twice is a
// no-op.
func (s *Store) Put(data []byte) (string, error) {
	if !s.Exists() {
		return "", ErrNotInitialized
	}

	hash := s.hash(data)
	shardDir := filepath.Join(s.Root, ObjectsDir, hash[:2])
	if err := os.MkdirAll(shardDir, 0o0755); err != nil {
		return "", fmt.Errorf("shard creation failed: %w", err)
	}

	path := filepath.Join(shardDir, hash[2:])
	if _, err := os.Stat(path); err == nil {
		return hash, nil
	}

	if err := writeFileSync(path, data); err != nil {
		return "", fmt.Errorf("write object %s: %w", hash, err)
	}
	return hash, nil
}

func (s *Store) Get(hash string) ([]byte, error) {
	path, err := s.objectPath(hash)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read object %s: %w", hash, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("read object %s: %w", hash, err)
	}
	return data, nil
}

func (s *Store) Delete(hash string) error {
	path, err := s.objectPath(hash)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// List returns every object digest in lexical order.
func (s *Store) List() ([]string, error) {
	var hashes []string
	objRoot := filepath.Join(s.Root, ObjectsDir)

	err := filepath.Walk(objRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			shard := filepath.Base(filepath.Dir(path))
			hashes = append(hashes, shard+info.Name())
		}
		return nil
	})
	sort.Strings(hashes)
	return hashes, err
}

// Resolve expands a ref name or a digest prefix of at least 3 characters into
// a full digest. Refs win over prefixes.
func (s *Store) Resolve(nameOrPrefix string) (string, error) {
	if hash, err := s.ReadRef(nameOrPrefix); err == nil {
		return hash, nil
	}

	prefix := strings.ToLower(nameOrPrefix)
	if len(prefix) < 3 || !isHex(prefix) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, nameOrPrefix)
	}

	files, err := os.ReadDir(filepath.Join(s.Root, ObjectsDir, prefix[:2]))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrNotFound, nameOrPrefix)
	}

	var match string
	for _, f := range files {
		if strings.HasPrefix(f.Name(), prefix[2:]) {
			if match != "" {
				return "", fmt.Errorf("%w: %s", ErrAmbiguous, nameOrPrefix)
			}
			match = prefix[:2] + f.Name()
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: no object matching prefix %s", ErrNotFound, nameOrPrefix)
	}
	return match, nil
}

func (s *Store) objectPath(hash string) (string, error) {
	if len(hash) != sha256.Size*2 || !isHex(hash) {
		return "", fmt.Errorf("%w: %q", ErrInvalidHash, hash)
	}
	return filepath.Join(s.Root, ObjectsDir, hash[:2], hash[2:]), nil
}

func (s *Store) hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func isHex(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}
