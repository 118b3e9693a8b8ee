package ranking

import (
	"math"
	"sort"
)

// AggregateRanking is one model's mean position across all parsed rankings.
type AggregateRanking struct {
	Model     string
	MeanRank  float64
	VoteCount int // how many rankings actually placed this model
}

// Aggregate computes the mean 1-based rank per model from a set of parsed
// rankings (each a label sequence from ParseRankingFromText) plus the
// label-to-model mapping used to anonymize the rankings. Results are sorted
// ascending by mean rank, with model ID as a lexical tiebreak so equal means
// come out in a stable order. Mean ranks are rounded to two decimal places.
//
// Takes plain label slices and a map rather than a ranking-result type to
// keep this package free of a dependency on the council package, which owns
// those types.
func Aggregate(parsedRankings [][]string, labelToModel map[string]string) []AggregateRanking {
	positions := make(map[string][]int)

	for _, ranking := range parsedRankings {
		for i, label := range ranking {
			model, ok := labelToModel[label]
			if !ok {
				continue
			}
			positions[model] = append(positions[model], i+1)
		}
	}

	results := make([]AggregateRanking, 0, len(positions))
	for model, ranks := range positions {
		sum := 0
		for _, r := range ranks {
			sum += r
		}
		mean := float64(sum) / float64(len(ranks))
		results = append(results, AggregateRanking{
			Model:     model,
			MeanRank:  math.Round(mean*100) / 100,
			VoteCount: len(ranks),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].MeanRank != results[j].MeanRank {
			return results[i].MeanRank < results[j].MeanRank
		}
		return results[i].Model < results[j].Model
	})

	return results
}
