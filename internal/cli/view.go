// Package cli is the interactive console view over the vault: a small REPL
// that drives the session state machine, the file registry, and sharing, and
// surfaces the notification channel after each command.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dkalachov/filevault/internal/app"
	"github.com/dkalachov/filevault/internal/models"
)

// View holds the interactive state: the application it drives, the input
// reader, and the currently selected file (0 when nothing is selected).
type View struct {
	app        *app.App
	reader     *bufio.Reader
	out        io.Writer
	selectedID int64
}

func NewView(a *app.App) *View {
	return &View{app: a, reader: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// Run starts the REPL and blocks until the user exits or ctx is cancelled.
func (v *View) Run(ctx context.Context) {
	printlnFn("Welcome to FileVault (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, v, scanner)
}

func (v *View) isAuthenticated() bool {
	return v.app.Session.CurrentStage() == models.StageAuthenticated
}

// status renders the prompt decoration: the display name when authenticated,
// the pending marker mid-login, nothing otherwise.
func (v *View) status() string {
	switch v.app.Session.CurrentStage() {
	case models.StageAuthenticated:
		if id := v.app.Session.CurrentIdentity(); id != nil {
			return fmt.Sprintf("(%s)", id.DisplayName)
		}
		return ""
	case models.StageSecondFactorPending:
		return "(awaiting code)"
	default:
		return ""
	}
}

// flash prints and dismisses the current notification, if one is live.
func (v *View) flash() {
	n := v.app.Notifications.Current()
	if n == nil {
		return
	}
	switch n.Kind {
	case models.NotificationError:
		printlnFn("!", n.Message)
	default:
		printlnFn("*", n.Message)
	}
}

func formatSize(sizeBytes int64) string {
	return fmt.Sprintf("%.1f MB", float64(sizeBytes)/(1024*1024))
}

func formatRecord(r *models.FileRecord) string {
	owner := r.OwnerID
	if r.OwnedBySelf() {
		owner = "you"
	}
	line := fmt.Sprintf("[%d] %s  %s  %s  modified %s  owner: %s",
		r.ID, r.Name, r.Kind, formatSize(r.SizeBytes), r.ModifiedAt.Format("2006-01-02"), owner)
	if len(r.Shares) > 0 {
		line += fmt.Sprintf("  shared with %d", len(r.Shares))
	}
	return line
}
