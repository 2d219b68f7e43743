package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gegeAi/text-indexing/codec"
	"github.com/gegeAi/text-indexing/index"
	"github.com/gegeAi/text-indexing/query"
	"github.com/gegeAi/text-indexing/tokenize"
)

var (
	queryIndex     string
	queryCodec     string
	queryTopK      int
	queryAlgorithm string
	queryNoStem    bool
)

var queryCmd = &cobra.Command{
	Use:   "query <terms...>",
	Short: "run a conjunctive top-k query against an index file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := resolveCodec(queryCodec)
		if err != nil {
			return err
		}
		r := index.Open(queryIndex, c, codec.DefaultWidths())
		tok := tokenize.Tokenizer{NoStem: queryNoStem}

		q := args[0]
		for _, a := range args[1:] {
			q += " " + a
		}

		var results []query.Result
		switch queryAlgorithm {
		case "naive":
			results, err = query.Naive(q, tok, r, queryTopK)
		case "threshold":
			results, err = query.Threshold(q, tok, r, queryTopK)
		default:
			return errors.Errorf("unknown algorithm %q (want naive or threshold)", queryAlgorithm)
		}
		if err != nil {
			return errors.Wrap(err, "running query")
		}

		for _, res := range results {
			fmt.Printf("%d\t%d\n", res.DocID, res.Score)
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVarP(&queryIndex, "index", "i", "index.out", "index file to query")
	queryCmd.Flags().StringVar(&queryCodec, "codec", "naive", "posting-list codec: naive or delta")
	queryCmd.Flags().IntVarP(&queryTopK, "top", "k", 10, "number of results to return")
	queryCmd.Flags().StringVar(&queryAlgorithm, "algorithm", "threshold", "query algorithm: naive or threshold")
	queryCmd.Flags().BoolVar(&queryNoStem, "no-stem", false, "disable Porter2 stemming")
	queryCmd.MarkFlagRequired("index")
}
