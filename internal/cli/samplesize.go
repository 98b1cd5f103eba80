package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ppiankov/grantab/internal/stats"
	"github.com/ppiankov/grantab/internal/util"
	"github.com/spf13/cobra"
)

var (
	baseline float64
	effects  []float64
	ssAlpha  float64
	ssPower  float64
)

// samplesizeCmd represents the samplesize command
var samplesizeCmd = &cobra.Command{
	Use:   "samplesize",
	Short: "Estimate required sample size per arm for a real experiment",
	Long: `Samplesize estimates how many proposals each arm would need to detect
a given approval-rate change with the configured significance level
and power, using the standard two-proportion formula.

Effects are absolute changes to the baseline rate: with a baseline of
0.85, an effect of 0.02 tests 0.85 against 0.87.

Example:
  grantab samplesize
  grantab samplesize --baseline 0.85 --effects 0.01,0.02,0.05
  grantab samplesize --baseline 0.85 --alpha 0.01 --power 0.9`,
	Args: cobra.NoArgs,
	RunE: runSampleSize,
}

func init() {
	rootCmd.AddCommand(samplesizeCmd)

	samplesizeCmd.Flags().Float64Var(&baseline, "baseline", 0.8486, "baseline approval rate")
	samplesizeCmd.Flags().Float64SliceVar(&effects, "effects", []float64{0.01, 0.02, 0.03, 0.05}, "absolute rate changes to detect")
	samplesizeCmd.Flags().Float64Var(&ssAlpha, "alpha", 0.05, "significance level")
	samplesizeCmd.Flags().Float64Var(&ssPower, "power", 0.8, "statistical power")
}

func runSampleSize(cmd *cobra.Command, args []string) error {
	fmt.Printf("═══════════════════════════════════════════════════════════\n")
	fmt.Printf("  Sample Size Estimation\n")
	fmt.Printf("═══════════════════════════════════════════════════════════\n\n")
	fmt.Printf("  Baseline rate: %s\n", util.FormatPercent(baseline))
	fmt.Printf("  Alpha:         %g\n", ssAlpha)
	fmt.Printf("  Power:         %g\n\n", ssPower)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "  Effect\tTarget Rate\tPer Arm\tTotal (4 arms)\n")
	fmt.Fprintf(w, "  ------\t-----------\t-------\t--------------\n")
	for _, effect := range effects {
		n, err := stats.SampleSize(baseline, baseline+effect, ssAlpha, ssPower)
		if err != nil {
			return fmt.Errorf("effect %+.3f: %w", effect, err)
		}
		fmt.Fprintf(w, "  %+.3f\t%s\t%s\t%s\n",
			effect,
			util.FormatPercent(baseline+effect),
			util.FormatCount(int64(n)),
			util.FormatCount(int64(n*4)))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	fmt.Println()

	return nil
}
