package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	huh "charm.land/huh/v2"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/eora-ai/eora/internal/config"
	"github.com/eora-ai/eora/internal/controller"
	"github.com/eora-ai/eora/internal/logger"
	"github.com/eora-ai/eora/internal/session"
)

var skipConfirm bool

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List, create, open and delete chat sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(cfg *config.Config, backend controller.Backend) error {
			return listSessions(cmd.Context(), cmd.OutOrStdout(), cfg, backend)
		})
	},
}

var sessionsNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a session and make it current",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(cfg *config.Config, backend controller.Backend) error {
			return newSession(cmd.Context(), cmd.OutOrStdout(), cfg, backend)
		})
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more sessions",
	Long: `Delete one or more sessions by id. Every id gets its own request; one
failure does not stop the rest. Asks for confirmation unless --yes is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmer := controller.Confirmer(controller.ConfirmFunc(promptConfirm))
		if skipConfirm {
			confirmer = controller.ConfirmFunc(func(context.Context, string) bool { return true })
		}
		return withBackend(func(cfg *config.Config, backend controller.Backend) error {
			return deleteSessions(cmd.Context(), cmd.OutOrStdout(), cfg, backend, confirmer, args)
		})
	},
}

var sessionsOpenCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Print a session's messages and make it current",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(cfg *config.Config, backend controller.Backend) error {
			return openSession(cmd.Context(), cmd.OutOrStdout(), cfg, backend, args[0])
		})
	},
}

func init() {
	sessionsDeleteCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsNewCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsOpenCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// withBackend loads the config and runs fn against the configured server.
func withBackend(fn func(*config.Config, controller.Backend) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()
	return fn(cfg, newBackend(cfg))
}

// promptConfirm asks on the terminal. Anything but an explicit yes declines.
func promptConfirm(ctx context.Context, prompt string) bool {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(prompt).
			Affirmative("삭제").
			Negative("취소").
			Value(&ok),
	))
	if err := form.RunWithContext(ctx); err != nil {
		logger.WithComponent("cmd").Debug("confirmation aborted", "error", err)
		return false
	}
	return ok
}

// textView prints what the controller renders. Notices and errors go to
// the same writer; the exit status carries failure.
type textView struct {
	out io.Writer
	now func() time.Time

	// showList prints every RenderSessions call. Commands that only change
	// one session leave it off.
	showList bool
}

func newTextView(out io.Writer, showList bool) *textView {
	return &textView{out: out, now: time.Now, showList: showList}
}

const nameColumn = 28

func (v *textView) RenderSessions(snap session.Snapshot) {
	if !v.showList {
		return
	}
	if len(snap.Sessions) == 0 {
		fmt.Fprintln(v.out, "세션이 없습니다.")
		return
	}
	now := v.now()
	for _, sess := range snap.Sessions {
		marker := " "
		if snap.IsCurrent(sess.ID) {
			marker = "*"
		}
		name := runewidth.FillRight(runewidth.Truncate(sess.Name, nameColumn, "…"), nameColumn)
		fmt.Fprintf(v.out, "%s %s  %s  %s  %s개 메시지\n",
			marker, sess.ID, name, session.DisplayTime(now, sess),
			humanize.Comma(int64(sess.MessageCount)))
	}
}

func (v *textView) RenderPoints(text string) {
	fmt.Fprintf(v.out, "포인트: %s\n", text)
}

func (v *textView) ShowMessage(n controller.Notice) {
	// Progress notices only make sense while a spinner is on screen.
	if n.Type == controller.NoticeInfo {
		return
	}
	fmt.Fprintln(v.out, n.Text)
}

func (v *textView) ClearChat() {}

func (v *textView) RenderMessages(sessionID string, msgs []session.Message) {
	if len(msgs) == 0 {
		fmt.Fprintln(v.out, "메시지가 없습니다.")
		return
	}
	for i, msg := range msgs {
		if i > 0 {
			fmt.Fprintln(v.out)
		}
		v.AppendMessage(sessionID, msg)
	}
}

func (v *textView) AppendMessage(_ string, msg session.Message) {
	label := "EORA"
	if msg.Role == session.RoleUser {
		label = "나"
	}
	if !msg.Timestamp.IsZero() {
		label += " " + msg.Timestamp.Local().Format("15:04")
	}
	fmt.Fprintf(v.out, "[%s]\n%s\n", label, strings.TrimSpace(msg.Content))
}

func listSessions(ctx context.Context, out io.Writer, cfg *config.Config, backend controller.Backend) error {
	ctrl := controller.New(backend, controller.Options{
		View:   newTextView(out, true),
		Store:  cfg,
		UserID: cfg.GetUserID(),
	})
	if res := ctrl.LoadSessions(ctx); res.Err != nil {
		return fmt.Errorf("error listing sessions: %w", res.Err)
	}
	return nil
}

func newSession(ctx context.Context, out io.Writer, cfg *config.Config, backend controller.Backend) error {
	ctrl := controller.New(backend, controller.Options{
		View:   newTextView(out, false),
		Store:  cfg,
		UserID: cfg.GetUserID(),
	})
	res := ctrl.CreateSession(ctx)
	fmt.Fprintf(out, "%s  %s\n", res.Session.ID, res.Session.Name)
	return nil
}

func deleteSessions(ctx context.Context, out io.Writer, cfg *config.Config, backend controller.Backend, confirmer controller.Confirmer, ids []string) error {
	ctrl := controller.New(backend, controller.Options{
		View:      newTextView(out, false),
		Confirmer: confirmer,
		Store:     cfg,
		UserID:    cfg.GetUserID(),
	})
	if res := ctrl.LoadSessions(ctx); res.Err != nil {
		return fmt.Errorf("error listing sessions: %w", res.Err)
	}

	var unknown []string
	for _, id := range ids {
		if !ctrl.ToggleSelection(id, true) {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown session(s): %s", strings.Join(unknown, ", "))
	}

	res := ctrl.DeleteSelected(ctx)
	switch {
	case res.Cancelled:
		fmt.Fprintln(out, "취소되었습니다.")
	case len(res.Failed) > 0:
		return fmt.Errorf("%d of %d session(s) could not be deleted", len(res.Failed), len(res.Requested))
	}
	return nil
}

func openSession(ctx context.Context, out io.Writer, cfg *config.Config, backend controller.Backend, id string) error {
	ctrl := controller.New(backend, controller.Options{
		View:   newTextView(out, false),
		Store:  cfg,
		UserID: cfg.GetUserID(),
	})
	res, err := ctrl.LoadSession(ctx, id)
	if err != nil {
		return err
	}
	if res.MessagesErr != nil {
		return fmt.Errorf("error loading messages: %w", res.MessagesErr)
	}
	return nil
}
