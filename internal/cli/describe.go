package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ppiankov/grantab/internal/dataset"
	"github.com/ppiankov/grantab/internal/model"
	"github.com/ppiankov/grantab/internal/stats"
	"github.com/ppiankov/grantab/internal/util"
	"github.com/spf13/cobra"
)

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe <dataset.csv>",
	Short: "Print descriptive statistics for a proposals dataset",
	Long: `Describe loads a proposals CSV and prints length distributions for
titles, essays, and summaries, together with the observed approval
rate. No assignment or simulation happens; this is a quick look at
the raw data before running an experiment.

Example:
  grantab describe train.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	records, err := dataset.Load(args[0])
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	approved := make([]bool, len(records))
	essays := make([]int, len(records))
	for i, rec := range records {
		approved[i] = rec.Approved
		essays[i] = rec.EssayLength
	}

	fmt.Printf("═══════════════════════════════════════════════════════════\n")
	fmt.Printf("  Dataset: %s\n", args[0])
	fmt.Printf("═══════════════════════════════════════════════════════════\n\n")
	fmt.Printf("  Proposals:     %s\n", util.FormatCount(int64(len(records))))
	fmt.Printf("  Approval rate: %s\n\n", util.FormatPercent(stats.Rate(approved)))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "  Field\tStatus\tMean\tMedian\tStdDev\n")
	fmt.Fprintf(w, "  -----\t------\t----\t------\t------\n")
	for _, field := range []struct {
		name   string
		length func(model.Record) int
	}{
		{"Title", func(r model.Record) int { return r.TitleLength }},
		{"Essay", func(r model.Record) int { return r.EssayLength }},
		{"Summary", func(r model.Record) int { return r.SummaryLength }},
		{"Total", func(r model.Record) int { return r.TotalLength }},
	} {
		for _, status := range []struct {
			name     string
			approved bool
		}{
			{"approved", true},
			{"rejected", false},
		} {
			var lengths []int
			for _, rec := range records {
				if rec.Approved == status.approved {
					lengths = append(lengths, field.length(rec))
				}
			}
			s := stats.Summarize(lengths)
			fmt.Fprintf(w, "  %s\t%s\t%.1f\t%.1f\t%.1f\n", field.name, status.name, s.Mean, s.Median, s.StdDev)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}

	fmt.Println()
	printThresholdCoverage(essays)

	return nil
}

// printThresholdCoverage shows how many essays would clear each treatment
// arm's minimum, a preview of how binding the requirements are.
func printThresholdCoverage(essays []int) {
	cfg := model.DefaultConfig().Experiment

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "  Arm\tMin Length\tBelow Min\n")
	fmt.Fprintf(w, "  ---\t----------\t---------\n")
	for _, cohort := range model.TreatmentCohorts {
		threshold := cfg.Threshold(cohort)
		below := 0
		for _, length := range essays {
			if length < threshold {
				below++
			}
		}
		share := float64(below) / float64(len(essays))
		fmt.Fprintf(w, "  %s (%s)\t%d\t%s (%s)\n",
			cohort, cohort.Name(), threshold,
			util.FormatCount(int64(below)), util.FormatPercent(share))
	}
	_ = w.Flush()
	fmt.Println()
}
