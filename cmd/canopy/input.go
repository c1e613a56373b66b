package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/canopyml/canopy"
	"github.com/canopyml/canopy/histogram"
	"github.com/canopyml/canopy/histogram/redisstore"
	"github.com/canopyml/canopy/label"
	"github.com/canopyml/canopy/source"
	"github.com/canopyml/canopy/source/annotation"
	"github.com/canopyml/canopy/source/csv"
	"github.com/canopyml/canopy/source/mongosource"
	"github.com/canopyml/canopy/source/sqlsource"
	"github.com/canopyml/canopy/source/sqlsource/pgadapter"
	"github.com/canopyml/canopy/source/sqlsource/sqlite3adapter"
	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"
	redis "gopkg.in/redis.v5"
)

/*
inputConfig describes where to read the labels of a set of training
examples from. The input is interpreted according to its form:
a postgresql:// or mongodb:// connection URL, a redis:// URL pointing
at an accumulated histogram, a path to an SQLite3 (.db) file, a path
to a CSV (.csv) file, a path to an annotation file, or, when empty,
STDIN interpreted as CSV.
*/
type inputConfig struct {
	*rootCmdConfig
	labelColumn string
	table       string
	collection  string
	redisPrefix string
	workers     int
	maxDBConns  int
}

func (ic *inputConfig) declareFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(ic.labelColumn), "label-column", "c", "label", "name of the CSV column, SQL column or mongo document field holding labels")
	cmd.PersistentFlags().StringVarP(&(ic.table), "table", "t", "samples", "name of the SQL table holding labelled examples")
	cmd.PersistentFlags().StringVar(&(ic.collection), "collection", "samples", "name of the MongoDB collection holding labelled examples")
	cmd.PersistentFlags().StringVar(&(ic.redisPrefix), "redis-prefix", "canopy:histogram", "prefix of the redis keys under which an accumulated histogram is kept")
	cmd.PersistentFlags().IntVarP(&(ic.workers), "workers", "w", 1, "number of goroutines accumulating labels into the histogram")
	cmd.PersistentFlags().IntVar(&(ic.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
}

/*
histogramFrom builds the label histogram of the examples behind the
given input.
*/
func (ic *inputConfig) histogramFrom(ctx context.Context, input string) (*histogram.Histogram[string], error) {
	if strings.HasPrefix(input, "redis://") {
		return ic.redisHistogram(ctx, input)
	}
	src, err := ic.labelSource(ctx, input)
	if err != nil {
		return nil, err
	}
	return canopy.Accumulate(ctx, src, ic.workers)
}

func (ic *inputConfig) labelSource(ctx context.Context, input string) (source.Source[string], error) {
	codec := label.StringCodec{}
	switch {
	case input == "":
		ic.Logf("Reading labels from STDIN as CSV...")
		return csv.Read[string](os.Stdin, ic.labelColumn, codec)
	case strings.HasPrefix(input, "postgresql://"):
		ic.Logf("Creating PostgreSQL adapter for url %s to read labels...", input)
		adapter, err := pgadapter.New(input)
		if err != nil {
			return nil, err
		}
		return sqlsource.Open[string](adapter, ic.table, ic.labelColumn, codec)
	case strings.HasPrefix(input, "mongodb://"):
		ic.Logf("Connecting to MongoDB at %s to read labels...", input)
		session, err := mgo.Dial(input)
		if err != nil {
			return nil, fmt.Errorf("connecting to MongoDB at %s: %v", input, err)
		}
		return mongosource.Open[string](session, ic.collection, ic.labelColumn, codec), nil
	case strings.HasSuffix(input, ".db"):
		ic.Logf("Creating SQLite3 adapter for file %s to read labels...", input)
		adapter, err := sqlite3adapter.New(input, ic.maxDBConns)
		if err != nil {
			return nil, err
		}
		return sqlsource.Open[string](adapter, ic.table, ic.labelColumn, codec)
	case strings.HasSuffix(input, ".csv"):
		ic.Logf("Opening %s to read labels as CSV...", input)
		return csv.ReadFromFilePath[string](input, ic.labelColumn, codec)
	default:
		ic.Logf("Opening %s to read labels as an annotation file...", input)
		instances, err := annotation.ReadInstancesFromFilePath[string](input, codec)
		if err != nil {
			return nil, err
		}
		return annotation.New(instances), nil
	}
}

func (ic *inputConfig) redisHistogram(ctx context.Context, input string) (*histogram.Histogram[string], error) {
	addr := strings.TrimPrefix(input, "redis://")
	if addr == "" {
		return nil, fmt.Errorf("redis url %s has no address", input)
	}
	ic.Logf("Connecting to redis at %s to snapshot the accumulated histogram...", addr)
	rc := redis.NewClient(&redis.Options{Addr: addr})
	defer rc.Close()
	store := redisstore.New[string](rc, ic.redisPrefix, label.StringCodec{})
	return store.Snapshot(ctx)
}
