package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gegeAi/text-indexing/codec"
	"github.com/gegeAi/text-indexing/corpus"
	"github.com/gegeAi/text-indexing/index"
	"github.com/gegeAi/text-indexing/score"
	"github.com/gegeAi/text-indexing/tokenize"
)

var (
	buildOut    string
	buildCodec  string
	buildNoStem bool
)

var buildCmd = &cobra.Command{
	Use:   "build <collection.xml>...",
	Short: "tokenize one or more XML document collections into a sorted index file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := resolveCodec(buildCodec)
		if err != nil {
			return err
		}

		tok := tokenize.Tokenizer{NoStem: buildNoStem}
		ix := index.New(score.TermFrequency, index.WithCodec(c), index.WithWidths(codec.DefaultWidths()))

		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				return errors.Wrapf(err, "opening %s", path)
			}
			docs, err := corpus.Read(f, tok)
			f.Close()
			if err != nil {
				return errors.Wrapf(err, "reading %s", path)
			}
			for _, doc := range docs {
				ix.AddDocument(doc)
			}
			logger.Info().Str("path", path).Int("documents", len(docs)).Msg("ingested collection")
		}

		if err := ix.Save(buildOut); err != nil {
			return errors.Wrap(err, "saving index")
		}
		logger.Info().Str("out", buildOut).Int("terms", ix.Len()).Msg("build complete")
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "index.out", "output index file path")
	buildCmd.Flags().StringVar(&buildCodec, "codec", "naive", "posting-list codec: naive or delta")
	buildCmd.Flags().BoolVar(&buildNoStem, "no-stem", false, "disable Porter2 stemming")
}

func resolveCodec(name string) (codec.Codec, error) {
	w := codec.DefaultWidths()
	switch name {
	case "naive":
		return codec.NaiveCodec{Widths: w}, nil
	case "delta":
		return codec.DeltaCodec{Widths: w}, nil
	default:
		return nil, errors.Errorf("unknown codec %q (want naive or delta)", name)
	}
}
