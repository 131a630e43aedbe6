package main

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"duit/internal/entry"
	"duit/internal/home"
)

var (
	resetYes  bool
	backupOut string
)

// statusCmd shows the stored profile and counters
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your goal, tone and progress",
	RunE:  runStatus,
}

// resetCmd wipes all stored data
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all progress (asks for confirmation)",
	RunE:  runReset,
}

// backupCmd exports stored data to JSON
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a JSON backup of all stored data",
	RunE:  runBackup,
}

// historyCmd prints the activity log
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show today's activity",
	RunE:  runHistory,
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()
	ctx := cmd.Context()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Duit status")
	fmt.Fprintf(out, "  Data dir: %s\n", e.cfg.DataDir)
	fmt.Fprintf(out, "  Storage:  %s\n", e.cfg.Storage.Backend)

	profile, res := entry.LoadProfile(ctx, e.adapter)
	switch {
	case res.Failed():
		fmt.Fprintf(out, "  Setup:    unreadable (%v)\n", res.Err)
	case !res.Found() || !profile.SetupComplete:
		fmt.Fprintln(out, "  Setup:    not completed (run `duit` to start)")
	default:
		fmt.Fprintln(out, "  Setup:    complete")
		fmt.Fprintf(out, "  Goal:     %s\n", profile.Goal.Label())
		fmt.Fprintf(out, "  Tone:     %s\n", profile.Tone.Label())
	}

	blocked := home.NewCounter(e.adapter).Load(ctx)
	streak := home.LoadStreak(ctx, e.adapter)
	settings := home.NewSettingsManager(e.adapter).Load(ctx)

	fmt.Fprintf(out, "  Blocked apps opened: %d\n", blocked)
	fmt.Fprintf(out, "  Streak:   %d days\n", streak.Days)
	if settings.DailyReminder {
		fmt.Fprintf(out, "  Reminder: %s\n", settings.ReminderTime)
	} else {
		fmt.Fprintln(out, "  Reminder: off")
	}
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetYes {
		fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", home.ResetConfirmMessage)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled.")
			return nil
		}
	}

	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	if res := home.Reset(cmd.Context(), e.adapter); res.Failed() {
		logger.Error("Reset failed", zap.Error(res.Err))
		return fmt.Errorf("%s: %w", home.ResetFailure, res.Err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), home.ResetSuccess)
	return nil
}

func runBackup(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	now := time.Now()
	path := backupOut
	if path == "" {
		path = home.BackupPath(e.cfg.DataDir, now)
	}

	b, err := home.WriteBackup(cmd.Context(), e.adapter, path, now)
	if err != nil {
		return fmt.Errorf("%s: %w", home.BackupFailure, err)
	}
	logger.Info("Backup written", zap.String("path", path), zap.Int("keys", len(b.Data)))
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n  %s (%d keys)\n", home.BackupSuccess, path, len(b.Data))
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	for _, item := range home.NewHistory(e.adapter).List(cmd.Context()) {
		fmt.Fprintf(out, "%s  %s\n", item.Time, item.Action)
	}
	return nil
}
