package bench

import "github.com/jamesainslie/go-uidet/box"

// DefaultTags is the UI element vocabulary of the reference corpus.
var DefaultTags = []string{"button", "input", "radio", "dropdown"}

// Config holds evaluation parameters.
type Config struct {
	IoUThreshold float64
	Tags         []string // scored tags, in report order
	Ext          string   // annotation file extension
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	tags := make([]string, len(DefaultTags))
	copy(tags, DefaultTags)
	return Config{
		IoUThreshold: 0.5,
		Tags:         tags,
		Ext:          ".json",
	}
}

// Counts are running totals for one tag.
type Counts struct {
	TruePositives int
	GroundTruth   int
	Predicted     int
}

// Add folds one matching outcome into c.
func (c *Counts) Add(o Outcome) {
	c.TruePositives += o.Matched
	c.GroundTruth += o.GroundTruth
	c.Predicted += o.Predicted
}

// FalsePositives returns predictions that matched nothing.
func (c Counts) FalsePositives() int {
	return c.Predicted - c.TruePositives
}

// FalseNegatives returns ground-truth boxes left unmatched.
func (c Counts) FalseNegatives() int {
	return c.GroundTruth - c.TruePositives
}

// Metrics holds evaluation results.
type Metrics struct {
	Counts
	Precision float64
	Recall    float64
	F1        float64
}

// ComputeMetrics derives precision, recall and F1 from counts.
// Each ratio is 0 when its denominator is 0.
func ComputeMetrics(c Counts) Metrics {
	m := Metrics{Counts: c}
	if c.Predicted > 0 {
		m.Precision = float64(c.TruePositives) / float64(c.Predicted)
	}
	if c.GroundTruth > 0 {
		m.Recall = float64(c.TruePositives) / float64(c.GroundTruth)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

// Stats accumulates counts per tag across a corpus.
// It is not safe for concurrent use.
type Stats struct {
	tags   []string
	counts map[string]Counts
}

// NewStats creates empty stats for the given tag vocabulary.
func NewStats(tags []string) *Stats {
	s := &Stats{
		tags:   make([]string, 0, len(tags)),
		counts: make(map[string]Counts, len(tags)),
	}
	for _, tag := range tags {
		if _, dup := s.counts[tag]; dup {
			continue
		}
		s.tags = append(s.tags, tag)
		s.counts[tag] = Counts{}
	}
	return s
}

// Tags returns a copy of the vocabulary in report order.
func (s *Stats) Tags() []string {
	tags := make([]string, len(s.tags))
	copy(tags, s.tags)
	return tags
}

// Add folds an outcome into the totals for tag. Tags outside the
// vocabulary are ignored.
func (s *Stats) Add(tag string, o Outcome) {
	c, ok := s.counts[tag]
	if !ok {
		return
	}
	c.Add(o)
	s.counts[tag] = c
}

// Get returns the totals for tag.
func (s *Stats) Get(tag string) Counts {
	return s.counts[tag]
}

// Total pools the counts of every tag. Metrics computed from it are
// micro-averaged.
func (s *Stats) Total() Counts {
	var total Counts
	for _, tag := range s.tags {
		c := s.counts[tag]
		total.TruePositives += c.TruePositives
		total.GroundTruth += c.GroundTruth
		total.Predicted += c.Predicted
	}
	return total
}

// ScoreImage matches every vocabulary tag of one image and adds the
// outcomes to s. Boxes with other tags never contribute.
func ScoreImage(s *Stats, gt, pred box.Collection, threshold float64) {
	for _, tag := range s.tags {
		s.Add(tag, Match(gt, pred, tag, threshold))
	}
}
