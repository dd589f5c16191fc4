package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/rgehrsitz/famcalc/internal/calculation"
	"github.com/rgehrsitz/famcalc/internal/domain"
	"github.com/rgehrsitz/famcalc/internal/moments"
	"github.com/spf13/cobra"
)

// openStore opens the moments store named by the persistent flags.
func openStore(cmd *cobra.Command) (moments.Store, string, error) {
	driver, _ := cmd.Flags().GetString("db-driver")
	dsn, _ := cmd.Flags().GetString("db")
	key, _ := cmd.Flags().GetString("key")

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	store, err := moments.Open(ctx, driver, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open moments store: %w", err)
	}
	return store, key, nil
}

// withStore runs fn against the store and closes it afterwards.
func withStore(fn func(cmd *cobra.Command, args []string, store moments.Store, key string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, key, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()
		return fn(cmd, args, store, key)
	}
}

func momentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moments",
		Short: "Keep a running log of connection moments",
	}
	cmd.PersistentFlags().String("db-driver", "sqlite", "Moments store driver (sqlite, postgres, memory)")
	cmd.PersistentFlags().String("db", "famcalc.db", "Database path or DSN")
	cmd.PersistentFlags().String("key", moments.DefaultKey, "Name of the moments list")

	add := &cobra.Command{
		Use:   "add",
		Short: "Log a moment",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, args []string, store moments.Store, key string) error {
			momentType, _ := cmd.Flags().GetString("type")
			duration, _ := cmd.Flags().GetFloat64("duration")
			day, _ := cmd.Flags().GetString("date")
			note, _ := cmd.Flags().GetString("note")
			if day == "" {
				day = time.Now().Format(time.DateOnly)
			}

			m, err := store.Add(cmd.Context(), key, domain.LoggedMoment{
				Type:     domain.MomentType(momentType),
				Duration: duration,
				Date:     day,
				Note:     note,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s moment %s (%s min on %s)\n", m.Type, m.ID, formatMinutes(m.Duration), m.Date)
			return nil
		}),
	}
	add.Flags().String("type", "", "Moment type (conversation, play, meal, learning, outdoor, routine)")
	add.Flags().Float64("duration", 0, "Duration in minutes")
	add.Flags().String("date", "", "Day of the moment, YYYY-MM-DD (default: today)")
	add.Flags().String("note", "", "Optional note")
	_ = add.MarkFlagRequired("type")
	_ = add.MarkFlagRequired("duration")

	list := &cobra.Command{
		Use:   "list",
		Short: "List logged moments",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, args []string, store moments.Store, key string) error {
			logged, err := store.List(cmd.Context(), key)
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(logged)
			}
			if len(logged) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No moments logged yet")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tTYPE\tMINUTES\tNOTE")
			for _, m := range logged {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Date, m.Type, formatMinutes(m.Duration), m.Note)
			}
			return tw.Flush()
		}),
	}
	list.Flags().Bool("json", false, "Print the list as JSON")

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a logged moment",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store moments.Store, key string) error {
			if err := store.Remove(cmd.Context(), key, args[0]); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every moment of the list",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, args []string, store moments.Store, key string) error {
			if err := store.Clear(cmd.Context(), key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", key)
			return nil
		}),
	}

	score := &cobra.Command{
		Use:   "score",
		Short: "Score the logged moments for the current week",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, args []string, store moments.Store, key string) error {
			logged, err := store.List(cmd.Context(), key)
			if err != nil {
				return err
			}
			var target *int
			if cmd.Flags().Changed("target") {
				n, _ := cmd.Flags().GetInt("target")
				target = &n
			}
			result, err := newEngine(cmd).Run(moments.MomentsInput(logged, target))
			if err != nil {
				return err
			}
			if err := store.RecordRun(cmd.Context(), key, domain.RunOf(result.Summary())); err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			return writeSummary(cmd.OutOrStdout(), format, result.Summary())
		}),
	}
	score.Flags().Int("target", domain.DefaultTargetMomentsPerWeek, "Weekly goal in moments")
	score.Flags().StringP("format", "f", "console", "Output format (console, json, csv, markdown, html)")

	badges := &cobra.Command{
		Use:   "badges",
		Short: "Show earned and pending badges",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, args []string, store moments.Store, key string) error {
			logged, err := store.List(cmd.Context(), key)
			if err != nil {
				return err
			}
			runs, err := store.Runs(cmd.Context(), key)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Maior sequência: %d dias\n\n", calculation.LongestStreak(moments.Inputs(logged)))
			for _, b := range calculation.EvaluateBadges(logged, runs) {
				mark := " "
				if b.Unlocked {
					mark = "x"
				}
				fmt.Fprintf(out, "[%s] %s %s (%d/%d) %s\n", mark, b.Icon, b.Name, b.Progress, b.Threshold, b.Description)
			}
			return nil
		}),
	}

	cmd.AddCommand(add, list, remove, clearCmd, score, badges)
	return cmd
}

func formatMinutes(m float64) string {
	return fmt.Sprintf("%g", m)
}
