package cli

import (
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/perfstats/internal/ingest"
	"github.com/wesleyorama2/perfstats/pkg/stats"
)

func newSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Summarize a sample stream",
		Long: `Read samples from a file (or stdin) and print a report of every counter.

Plain input holds "name value" lines; a bare value goes to the default
counter. With --json-field the input is JSON lines:
  perfstats summarize --json-field ms=$.frame.ms --json-field fps=frame.fps log.jsonl`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSummarize,
	}

	addIngestFlags(cmd)
	return cmd
}

func addIngestFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("json-field", nil, "Counter from a JSON path, as name=path (repeatable)")
	cmd.Flags().Bool("strict", false, "Fail on the first malformed line instead of skipping it")
	cmd.Flags().String("name", ingest.DefaultName, "Counter receiving bare values")
}

// ingestInput reads the command input into a new registry.
func ingestInput(cmd *cobra.Command, args []string, s *settings) (*stats.Registry, error) {
	rawFields, _ := cmd.Flags().GetStringArray("json-field")
	fields, err := parseFields(rawFields)
	if err != nil {
		return nil, err
	}
	strict, _ := cmd.Flags().GetBool("strict")
	name, _ := cmd.Flags().GetString("name")

	reg, err := s.registry(nil)
	if err != nil {
		return nil, err
	}

	in, err := openInput(cmd, args)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	reader := ingest.NewReader(in, ingest.Options{
		DefaultName: name,
		Fields:      fields,
		Strict:      strict,
		Logger:      s.logger,
	})

	n, err := ingest.Feed(cmd.Context(), reader, reg)
	if err != nil {
		return nil, err
	}
	s.logger.Info("input read", "samples", n, "lines", reader.Line(), "skipped", reader.Skipped())
	return reg, nil
}

func runSummarize(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	renderer, err := s.renderer()
	if err != nil {
		return err
	}

	reg, err := ingestInput(cmd, args, s)
	if err != nil {
		return err
	}

	snap := reg.Snapshot()
	if err := renderer.Render(cmd.OutOrStdout(), snap); err != nil {
		return err
	}
	return s.writeMetrics(snap)
}
