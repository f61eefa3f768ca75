package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/contre95/soulkeep/src/features/metrics"
	"github.com/contre95/soulkeep/src/history"
)

// Outcome is the terminal state of one advisor pass. Every outcome except
// OutcomeAborted and OutcomeSkip evicts the record; a dangling record after
// a crash is harmless since the next pass finds nothing on disk and lands
// in OutcomeAlreadyGone.
type Outcome string

const (
	OutcomeSkip                Outcome = "skip"
	OutcomeAlreadyGone         Outcome = "already-gone"
	OutcomeDeletedDir          Outcome = "deleted-dir"
	OutcomeDeletedFile         Outcome = "deleted-file"
	OutcomeDeletedDirRecursive Outcome = "deleted-dir-recursive"
	OutcomeKept                Outcome = "kept"
	OutcomeAborted             Outcome = "aborted"
	OutcomeSuppressed          Outcome = "suppressed"
)

// Advisor offers to clean up the original source of an item the host just
// removed. One invocation makes one pass; there is no retry loop.
type Advisor struct {
	store    history.Store
	host     history.HostLibrary
	prompter Prompter
	notifier history.Notifier
}

// NewAdvisor creates a new removal advisor. host may be nil when the host
// library database is unavailable; the recursive branch then skips the
// collateral track listing.
func NewAdvisor(store history.Store, host history.HostLibrary, prompter Prompter, notifier history.Notifier) *Advisor {
	if notifier == nil {
		notifier = history.NopNotifier{}
	}
	return &Advisor{store: store, host: host, prompter: prompter, notifier: notifier}
}

// OnItemRemoved handles the host's item-removed event for one item. The
// session carries the operator's "stop suggesting" choices across items of
// the same run.
func (a *Advisor) OnItemRemoved(ctx context.Context, session *history.Session, item history.RemovedItem) {
	metrics.HookEvents.WithLabelValues("removed").Inc()
	outcome, err := a.Suggest(ctx, session, item)
	if err != nil {
		slog.Warn("removal suggestion failed", "albumID", item.AlbumID, "error", err)
		return
	}
	slog.Debug("removal suggestion finished", "albumID", item.AlbumID, "outcome", outcome)
}

// Suggest runs the advisor state machine for one removed item and returns
// the terminal state. An error means the prompt stream broke mid-decision;
// the record is then left untouched.
func (a *Advisor) Suggest(ctx context.Context, session *history.Session, item history.RemovedItem) (Outcome, error) {
	if item.AlbumID == "" {
		return OutcomeSkip, nil
	}
	if session.Suppressed(item.AlbumID) {
		return OutcomeSkip, nil
	}

	origin, ok, err := a.store.Lookup(ctx, item.AlbumID)
	if err != nil {
		return OutcomeSkip, err
	}
	if !ok {
		// Legacy hosts stash the origin on the item itself.
		origin = item.SourcePath
	}
	if origin == "" {
		return OutcomeSkip, nil
	}

	info, err := os.Stat(origin)
	if err != nil {
		// Already gone from disk; nothing to offer, just forget it.
		a.evict(ctx, item.AlbumID, origin)
		return OutcomeAlreadyGone, nil
	}

	if info.IsDir() {
		return a.suggestDir(ctx, item, origin)
	}
	return a.suggestFile(ctx, session, item, origin)
}

func (a *Advisor) suggestDir(ctx context.Context, item history.RemovedItem, origin string) (Outcome, error) {
	question := fmt.Sprintf("The item:\n%s\noriginated in the directory:\n%s\nWould you like to delete the source directory of this item?",
		Warn(item.Path), Warn(origin))
	del, err := a.prompter.YesNo(question)
	if err != nil {
		return OutcomeKept, err
	}

	outcome := OutcomeKept
	if del {
		slog.Info("deleting the item's source directory", "path", origin)
		if err := os.RemoveAll(origin); err != nil {
			slog.Warn("failed to delete source directory", "path", origin, "error", err)
		}
		outcome = OutcomeDeletedDir
	}
	a.evict(ctx, item.AlbumID, origin)
	return outcome, nil
}

func (a *Advisor) suggestFile(ctx context.Context, session *history.Session, item history.RemovedItem, origin string) (Outcome, error) {
	question := fmt.Sprintf("The item:\n%s\noriginated from:\n%s\nWhat would you like to do?",
		Warn(item.Path), Warn(origin))
	answer, err := a.prompter.Choose(question, []Choice{
		{Key: 'd', Label: "delete the item's source"},
		{Key: 'r', Label: "recursively delete the source's directory"},
		{Key: 'n', Label: "do nothing"},
		{Key: 's', Label: "do nothing and stop suggesting for this album"},
	}, 0)
	if err != nil {
		return OutcomeKept, err
	}

	switch answer {
	case 'd':
		slog.Info("deleting the item's source file", "path", origin)
		if err := os.Remove(origin); err != nil {
			slog.Warn("failed to delete source file", "path", origin, "error", err)
		}
		a.evict(ctx, item.AlbumID, origin)
		return OutcomeDeletedFile, nil

	case 'r':
		return a.suggestRecursive(ctx, item, origin)

	case 's':
		session.Suppress(item.AlbumID)
		a.evict(ctx, item.AlbumID, origin)
		return OutcomeSuppressed, nil

	default:
		a.evict(ctx, item.AlbumID, origin)
		return OutcomeKept, nil
	}
}

// suggestRecursive offers to delete the whole parent directory of the
// source file, after showing what else that would take with it.
func (a *Advisor) suggestRecursive(ctx context.Context, item history.RemovedItem, origin string) (Outcome, error) {
	parent := filepath.Dir(origin)

	collateral, err := a.store.FindByPathPrefix(ctx, parent)
	if err != nil {
		return OutcomeAborted, err
	}
	a.prompter.Show("Doing so will delete the following records' sources as well:")
	for _, r := range collateral {
		if r.Identifier == item.AlbumID {
			continue
		}
		a.prompter.Show(Warn(r.OriginPath))
	}

	if a.host != nil {
		tracks, err := a.host.TracksUnderPath(ctx, parent)
		if err != nil {
			slog.Warn("could not query host library for collateral tracks", "path", parent, "error", err)
		} else if len(tracks) > 0 {
			a.prompter.Show("The host library still references these tracks under that directory:")
			for _, t := range tracks {
				a.prompter.Show(Warn(t))
			}
		}
	}

	answer, err := a.prompter.Choose("Would you like to continue?", []Choice{
		{Key: 'y', Label: "yes"},
		{Key: 'n', Label: "delete none"},
		{Key: 'f', Label: "delete just the file"},
	}, 'y')
	if err != nil {
		return OutcomeAborted, err
	}

	switch answer {
	case 'y':
		slog.Info("deleting the item's source directory", "path", parent)
		if err := os.RemoveAll(parent); err != nil {
			slog.Warn("failed to delete source directory", "path", parent, "error", err)
		}
		a.evict(ctx, item.AlbumID, origin)
		return OutcomeDeletedDirRecursive, nil

	case 'f':
		slog.Info("removing just the item's original source", "path", origin)
		if err := os.Remove(origin); err != nil {
			slog.Warn("failed to delete source file", "path", origin, "error", err)
		}
		a.evict(ctx, item.AlbumID, origin)
		return OutcomeDeletedFile, nil

	default:
		// The operator explicitly declined; the record stays.
		slog.Info("doing nothing, keeping the record", "albumID", item.AlbumID)
		return OutcomeAborted, nil
	}
}

func (a *Advisor) evict(ctx context.Context, identifier, origin string) {
	if err := a.store.Remove(ctx, identifier); err != nil {
		slog.Warn("failed to evict import record", "albumID", identifier, "error", err)
		return
	}
	metrics.RecordEvictions.Inc()
	a.notifier.RecordEvicted(identifier, origin)
}
