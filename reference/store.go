// Package reference reads reference reports out of a git repository.
package reference

import (
	"io"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/pkg/errors"

	"github.com/daedaleanai/xdlrc/log"
	"github.com/daedaleanai/xdlrc/util"
)

// DefaultRevision is used when no revision is configured.
const DefaultRevision = "HEAD"

// Store is a git repository holding reference reports.
type Store struct {
	dir  string
	repo *git.Repository
}

// Open opens the repository checked out in dir.
func Open(dir string) (*Store, error) {
	log.Debug("Opening reference repository '%s'.\n", dir)
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "opening reference repository %s", dir)
	}
	return &Store{dir, repo}, nil
}

// Clone clones the repository at url into dir.
func Clone(dir, url string) (*Store, error) {
	log.Log("Cloning '%s'.\n", url)
	log.Spinner.Start()
	defer log.Spinner.Stop()

	repo, err := git.PlainClone(dir, false, &git.CloneOptions{
		URL: url,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "cloning reference repository %s", url)
	}
	return &Store{dir, repo}, nil
}

// OpenOrClone opens the repository in dir, cloning it from url first if dir
// does not exist yet.
func OpenOrClone(dir, url string) (*Store, error) {
	if util.DirExists(dir) {
		log.Debug("Reference directory exists.\n")
		return Open(dir)
	}
	if url == "" {
		return nil, errors.Errorf("reference directory %s does not exist and no repository is configured", dir)
	}
	return Clone(dir, url)
}

// Dir returns the on-disk path of the repository.
func (s *Store) Dir() string {
	return s.dir
}

// Origin returns the first URL of the origin remote, or an empty string.
func (s *Store) Origin() string {
	remote, err := s.repo.Remote(git.DefaultRemoteName)
	if err != nil || len(remote.Config().URLs) == 0 {
		return ""
	}
	return remote.Config().URLs[0]
}

// Resolve converts revision (a hash, tag, branch, etc.) to a commit hash.
func (s *Store) Resolve(revision string) (string, error) {
	if revision == "" {
		revision = DefaultRevision
	}
	hash, err := s.repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return "", errors.Wrapf(err, "resolving revision %s", revision)
	}
	log.Debug("Revision '%s' was resolved to commit hash '%s'.\n", revision, hash.String())
	return hash.String(), nil
}

// Open returns the content of the report at path as of revision. The
// worktree is not touched.
func (s *Store) Open(revision, path string) (io.ReadCloser, error) {
	hash, err := s.Resolve(revision)
	if err != nil {
		return nil, err
	}
	commit, err := s.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, errors.Wrapf(err, "reading commit %s", hash)
	}
	file, err := commit.File(filepath.ToSlash(path))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s at %s", path, hash)
	}
	return file.Reader()
}
