package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
	"github.com/spf13/cobra"
)

var validatePublish bool

var validateCmd = &cobra.Command{
	Use:   "validate <file|->",
	Short: "Check a page data JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			raw []byte
			err error
		)
		if args[0] == "-" {
			raw, err = io.ReadAll(cmd.InOrStdin())
		} else {
			raw, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("err reading page data, %w", err)
		}
		return validatePageData(cmd.OutOrStdout(), raw, validatePublish)
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validatePublish, "publish", false, "also require the fields needed for publishing")
}

var errInvalidPageData = errors.New("page data is invalid")

func validatePageData(w io.Writer, raw []byte, publish bool) error {
	data, err := pagedata.Parse(raw)
	if err == nil && publish {
		err = data.CheckPublishable()
	}
	if err != nil {
		var verr *pagedata.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		for _, d := range verr.Details() {
			fmt.Fprintln(w, d)
		}
		return errInvalidPageData
	}
	fmt.Fprintf(w, "ok: %d sections\n", len(data.Sections))
	return nil
}
