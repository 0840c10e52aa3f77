package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/lunabrook/moodscope/internal/analytics"
	"github.com/lunabrook/moodscope/internal/cli"
	"github.com/lunabrook/moodscope/internal/model"
)

func recordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Inspect and manage stored check-ins",
	}

	cmd.AddCommand(recordsListCmd())
	cmd.AddCommand(recordsShowCmd())
	cmd.AddCommand(recordsExportCmd())
	cmd.AddCommand(recordsDeleteCmd())
	cmd.AddCommand(recordsBackfillCmd())

	return cmd
}

// parseDateBounds converts optional YYYY-MM-DD flags into an inclusive
// range. A missing bound falls open in that direction; --to covers the
// whole named day.
func parseDateBounds(fromFlag, toFlag string) (time.Time, time.Time, error) {
	from := time.Time{}
	to := time.Now()

	if fromFlag != "" {
		parsed, err := time.ParseInLocation("2006-01-02", fromFlag, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date %q: %w", fromFlag, err)
		}
		from = parsed
	}
	if toFlag != "" {
		parsed, err := time.ParseInLocation("2006-01-02", toFlag, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date %q: %w", toFlag, err)
		}
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return from, to, nil
}

func recordsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one check-in in full",
		RunE:  runRecordsShow,
	}

	cmd.Flags().String("id", "", "id of the check-in to show (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runRecordsShow(cmd *cobra.Command, _ []string) error {
	id, _ := cmd.Flags().GetString("id")

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStorage(store)

	record, err := store.GetCheckIn(cmd.Context(), id)
	if err != nil {
		return err
	}

	analysis, err := record.Analysis()
	if err != nil {
		return fmt.Errorf("failed to decode stored scores: %w", err)
	}

	fmt.Println(cli.RenderRecordLine(record))
	if record.UserNotes != "" {
		fmt.Printf("Notes: %s\n", record.UserNotes)
	}
	fmt.Println(cli.RenderAnalysis(analysis))
	return nil
}

func recordsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored check-ins, newest first",
		RunE:  runRecordsList,
	}

	cmd.Flags().Int("limit", 0, "show at most this many records (0 = all)")
	cmd.Flags().String("from", "", "only records on or after this date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "only records on or before this date (YYYY-MM-DD)")

	return cmd
}

func runRecordsList(cmd *cobra.Command, _ []string) error {
	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStorage(store)

	records, err := store.ListCheckIns(cmd.Context())
	if err != nil {
		return err
	}

	fromFlag, _ := cmd.Flags().GetString("from")
	toFlag, _ := cmd.Flags().GetString("to")
	if fromFlag != "" || toFlag != "" {
		from, to, err := parseDateBounds(fromFlag, toFlag)
		if err != nil {
			return err
		}
		records = analytics.FilterRange(records, from, to)
	}

	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	if len(records) == 0 {
		fmt.Println("No check-ins recorded yet.")
		return nil
	}

	for i := range records {
		fmt.Println(cli.RenderRecordLine(&records[i]))
	}
	return nil
}

func recordsExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export check-ins to CSV or JSON",
		RunE:  runRecordsExport,
	}

	cmd.Flags().StringP("output", "o", "", "output file (required)")
	cmd.Flags().String("format", "csv", "export format (csv, json)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runRecordsExport(cmd *cobra.Command, _ []string) error {
	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStorage(store)

	records, err := store.ListCheckIns(cmd.Context())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("nothing to export")
	}

	output, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	f, err := os.Create(output) //nolint:gosec // user-supplied path is the point
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close output file", "error", closeErr)
		}
	}()

	bar := progressbar.NewOptions(len(records),
		progressbar.OptionSetDescription("Exporting check-ins"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	switch format {
	case "csv":
		err = exportCSV(f, records, bar)
	case "json":
		err = exportJSON(f, records, bar)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d check-ins to %s\n", len(records), output)
	return nil
}

func exportCSV(f *os.File, records []model.CheckInRecord, bar *progressbar.ProgressBar) error {
	w := csv.NewWriter(f)

	header := []string{"id", "timestamp", "primary_emotion", "notes", "narrative", "voice_transcript"}
	for _, kind := range model.AllEmotions {
		header = append(header, string(kind))
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range records {
		r := &records[i]
		row := []string{
			r.ID,
			r.Timestamp.Format(time.RFC3339),
			r.PrimaryEmotion,
			r.UserNotes,
			r.Narrative,
			r.VoiceTranscript,
		}

		scores, err := r.Scores()
		if err != nil {
			slog.Warn("skipping undecodable scores", "record_id", r.ID, "error", err)
		}
		byKind := make(map[model.EmotionKind]float64)
		for _, score := range scores {
			byKind[score.Emotion] = score.Confidence
		}
		for _, kind := range model.AllEmotions {
			row = append(row, strconv.FormatFloat(byKind[kind], 'f', 3, 64))
		}

		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write record %s: %w", r.ID, err)
		}
		_ = bar.Add(1)
	}

	w.Flush()
	return w.Error()
}

type exportedScore struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

type exportedRecord struct {
	ID              string          `json:"id"`
	Timestamp       time.Time       `json:"timestamp"`
	PrimaryEmotion  string          `json:"primaryEmotion"`
	Notes           string          `json:"notes,omitempty"`
	Narrative       string          `json:"narrative,omitempty"`
	VoiceTranscript string          `json:"voiceTranscript,omitempty"`
	Scores          []exportedScore `json:"scores"`
}

func exportJSON(f *os.File, records []model.CheckInRecord, bar *progressbar.ProgressBar) error {
	out := make([]exportedRecord, 0, len(records))
	for i := range records {
		r := &records[i]
		scores, err := r.Scores()
		if err != nil {
			slog.Warn("skipping undecodable scores", "record_id", r.ID, "error", err)
		}
		exported := make([]exportedScore, 0, len(scores))
		for _, score := range scores {
			exported = append(exported, exportedScore{
				Emotion:    string(score.Emotion),
				Confidence: score.Confidence,
			})
		}
		out = append(out, exportedRecord{
			ID:              r.ID,
			Timestamp:       r.Timestamp,
			PrimaryEmotion:  r.PrimaryEmotion,
			Notes:           r.UserNotes,
			Narrative:       r.Narrative,
			VoiceTranscript: r.VoiceTranscript,
			Scores:          exported,
		})
		_ = bar.Add(1)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func recordsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete one check-in, or all of them",
		RunE:  runRecordsDelete,
	}

	cmd.Flags().String("id", "", "id of the check-in to delete")
	cmd.Flags().Bool("all", false, "delete every check-in")
	cmd.Flags().Bool("force", false, "skip the confirmation prompt")

	return cmd
}

func runRecordsDelete(cmd *cobra.Command, _ []string) error {
	id, _ := cmd.Flags().GetString("id")
	all, _ := cmd.Flags().GetBool("all")
	if (id == "") == !all {
		return fmt.Errorf("specify exactly one of --id or --all")
	}

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStorage(store)

	if all {
		if force, _ := cmd.Flags().GetBool("force"); !force {
			count, err := store.CountCheckIns(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("This will delete all %d check-ins. Type 'yes' to confirm: ", count)
			var answer string
			if _, err := fmt.Scanln(&answer); err != nil || answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}
		if err := store.DeleteAllCheckIns(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("All check-ins deleted.")
		return nil
	}

	if err := store.DeleteCheckIn(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("Deleted check-in %s\n", id)
	return nil
}

func recordsBackfillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Adjust a check-in's timestamp",
		Long: `Move a check-in to a different point in time, for entries logged
after the fact. The timestamp is RFC 3339, e.g. 2026-08-29T21:30:00Z.`,
		RunE: runRecordsBackfill,
	}

	cmd.Flags().String("id", "", "id of the check-in to adjust (required)")
	cmd.Flags().String("timestamp", "", "new timestamp in RFC 3339 (required)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("timestamp")

	return cmd
}

func runRecordsBackfill(cmd *cobra.Command, _ []string) error {
	id, _ := cmd.Flags().GetString("id")
	raw, _ := cmd.Flags().GetString("timestamp")

	timestamp, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStorage(store)

	if err := store.UpdateCheckInTimestamp(cmd.Context(), id, timestamp); err != nil {
		return err
	}

	fmt.Printf("Moved check-in %s to %s\n", id, timestamp.Format(time.RFC3339))
	return nil
}
