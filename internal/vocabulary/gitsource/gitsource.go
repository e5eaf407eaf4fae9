// Package gitsource keeps a local clone of a vocabulary repository up to date.
package gitsource

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-git/go-git/v5"
)

// Sync clones url into localPath when it does not exist yet, or pulls the latest changes.
// Progress output of git is written to progress, which may be nil.
func Sync(url, localPath string, progress io.Writer) error {
	_, err := os.Stat(localPath)
	switch {
	case os.IsNotExist(err):
		slog.Default().Info("cloning vocabulary repository", "url", url, "path", localPath)
		if _, err := git.PlainClone(localPath, false, &git.CloneOptions{
			URL:      url,
			Progress: progress,
		}); err != nil {
			return fmt.Errorf("git.PlainClone(%s) > %w", url, err)
		}
	case err == nil:
		slog.Default().Info("pulling vocabulary repository", "path", localPath)
		repo, err := git.PlainOpen(localPath)
		if err != nil {
			return fmt.Errorf("git.PlainOpen(%s) > %w", localPath, err)
		}
		worktree, err := repo.Worktree()
		if err != nil {
			return fmt.Errorf("repo.Worktree(%s) > %w", localPath, err)
		}
		err = worktree.Pull(&git.PullOptions{
			RemoteName: "origin",
			Progress:   progress,
		})
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			return fmt.Errorf("worktree.Pull(%s) > %w", localPath, err)
		}
	default:
		return fmt.Errorf("os.Stat(%s) > %w", localPath, err)
	}
	return nil
}
