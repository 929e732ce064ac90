package scanner

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/matzehuels/writeme/pkg/errors"
	"github.com/matzehuels/writeme/pkg/metadata"
)

// ErrAuthorFieldMissing reports a commit whose author has no name or email.
// It stops the history walk; contributors seen before it are kept.
var ErrAuthorFieldMissing = errors.New(errors.ErrCodeAuthorFieldMissing, "commit author name or email missing")

// ScanHistory reads the git repository at location. It fills Repository and
// Name from the origin remote and, unless the remote's platform is
// authoritative for contributor data, ranks commit authors into
// Contributors.
//
// Failures are logged as warnings and the record gathered so far is
// returned. Source is always location/.git.
func (s *Scanner) ScanHistory(ctx context.Context, location string) *metadata.Record {
	rec := metadata.NewRecord(filepath.Join(location, git.GitDirName))

	repo, err := git.PlainOpen(location)
	if err != nil {
		s.logger.Warn("could not open git repository", "path", location, "err", err)
		return rec
	}

	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		s.logger.Warn("could not resolve remote", "remote", git.DefaultRemoteName, "err", err)
		return rec
	}
	// A remote without a host (local path, file://) has an unknown
	// platform: the record gets no Repository but the walk still runs.
	if urls := remote.Config().URLs; len(urls) == 0 {
		s.logger.Debug("remote has no URL", "remote", git.DefaultRemoteName)
	} else if repository, err := metadata.ParseRepository(urls[0]); err != nil {
		s.logger.Debug("remote URL has no host platform", "url", urls[0], "err", err)
	} else {
		rec.Repository = repository
		rec.Name = metadata.String(repository.Name)
		if repository.Platform.Authoritative() {
			s.logger.Debug("skipping history walk", "platform", repository.Platform)
			return rec
		}
	}

	head, err := repo.Head()
	if err != nil {
		s.logger.Warn("could not resolve HEAD", "err", err)
		return rec
	}
	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		s.logger.Warn("could not walk history", "err", err)
		return rec
	}
	defer iter.Close()

	authors, err := collectAuthors(ctx, iter.Next)
	switch {
	case err == nil:
	case stderrors.Is(err, ErrAuthorFieldMissing):
		s.logger.Warn("stopped history walk early", "err", err, "commits", len(authors))
	default:
		s.logger.Warn("could not read commit history", "err", err)
		return rec
	}

	rec.Contributors = metadata.RankContributors(authors)
	return rec
}

// collectAuthors drains a commit iterator into one contributor per commit.
// A commit without author name or email ends the walk with
// ErrAuthorFieldMissing and the authors read so far. Any other error,
// cancellation included, discards them.
func collectAuthors(ctx context.Context, next func() (*object.Commit, error)) ([]metadata.Contributor, error) {
	var authors []metadata.Contributor
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := next()
		if err == io.EOF {
			return authors, nil
		}
		if err != nil {
			return nil, err
		}
		if c.Author.Name == "" || c.Author.Email == "" {
			return authors, fmt.Errorf("commit %s: %w", c.Hash, ErrAuthorFieldMissing)
		}
		authors = append(authors, metadata.Contributor{Name: c.Author.Name, Email: c.Author.Email})
	}
}
