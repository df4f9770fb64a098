package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"vidembed/internal/embed"
	"vidembed/internal/media"
)

var flagJSON bool

var recognizeCmd = &cobra.Command{
	Use:   "recognize URL...",
	Short: "Print the embed markup for video URLs",
	Long: `Print the embed fragment for each recognized URL, one per line.
Unrecognized URLs produce no output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: recognizeRun,
}

func init() {
	recognizeCmd.Flags().BoolVarP(&flagJSON, "json", "j", false, "Print descriptors as JSON")
}

func recognizeRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var descriptors []media.Descriptor
	for _, url := range args {
		n, d, err := embed.Build(url)
		if errors.Is(err, embed.ErrUnrecognized) {
			debugf("unrecognized: %s", url)
			continue
		}
		if err != nil {
			return err
		}
		debugf("%s -> %s", url, d.Kind)

		if flagJSON {
			descriptors = append(descriptors, d)
			continue
		}

		frag, err := embed.Render(n)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, frag)
	}

	if flagJSON {
		if descriptors == nil {
			descriptors = []media.Descriptor{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(descriptors)
	}
	return nil
}
