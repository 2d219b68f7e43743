package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gegeAi/text-indexing/codec"
	"github.com/gegeAi/text-indexing/merge"
)

var (
	mergeOut   string
	mergeCodec string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <left.idx> <right.idx>",
	Short: "stream-merge two sorted index files into one",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := resolveCodec(mergeCodec)
		if err != nil {
			return err
		}
		w := codec.DefaultWidths()
		if err := merge.Merge(mergeOut, args[0], args[1], c, w, logger); err != nil {
			return errors.Wrap(err, "merging index files")
		}
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOut, "out", "o", "merged.idx", "output index file path")
	mergeCmd.Flags().StringVar(&mergeCodec, "codec", "naive", "posting-list codec: naive or delta")
}
