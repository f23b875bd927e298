package mermaid

import (
	"strings"

	"go.uber.org/zap"
)

// Options tunes the heuristics of a Repairer.
type Options struct {
	// SplitOrder is the family priority used by the Splitter when content
	// holds keywords of several families.
	SplitOrder []Family
	// QuoteKeywords forces quoting of sequence messages containing one of
	// these words, matched case-insensitively.
	QuoteKeywords []string
	// MinBlockLength is the trimmed length a fenced block must exceed to be
	// treated as a diagram.
	MinBlockLength int
	// HeaderLookback is how many characters before a diagram are searched
	// for a markdown header to name it by.
	HeaderLookback int
	// LineBreakToken joins flowchart labels that were split across lines.
	LineBreakToken string
}

// DefaultOptions returns the stock heuristics.
func DefaultOptions() Options {
	return Options{
		SplitOrder:     []Family{FamilyER, FamilySequence, FamilyFlow, FamilyClass, FamilyState},
		QuoteKeywords:  []string{"error", "response", "unauthorized", "confirmed"},
		MinBlockLength: 10,
		HeaderLookback: 100,
		LineBreakToken: "<br/>",
	}
}

// Repairer applies the repair pipeline with a fixed set of options. A
// Repairer holds no mutable state and is safe for concurrent use.
type Repairer struct {
	opts Options
	log  *zap.Logger
}

// RepairerOption configures a Repairer.
type RepairerOption func(*Repairer)

// WithLogger routes repair decisions to logger at debug level.
func WithLogger(logger *zap.Logger) RepairerOption {
	return func(r *Repairer) {
		if logger != nil {
			r.log = logger
		}
	}
}

// NewRepairer creates a Repairer. Zero-valued fields of opts fall back to
// DefaultOptions.
func NewRepairer(opts Options, options ...RepairerOption) *Repairer {
	def := DefaultOptions()
	if len(opts.SplitOrder) == 0 {
		opts.SplitOrder = def.SplitOrder
	}
	if opts.QuoteKeywords == nil {
		opts.QuoteKeywords = def.QuoteKeywords
	}
	if opts.MinBlockLength <= 0 {
		opts.MinBlockLength = def.MinBlockLength
	}
	if opts.HeaderLookback <= 0 {
		opts.HeaderLookback = def.HeaderLookback
	}
	if opts.LineBreakToken == "" {
		opts.LineBreakToken = def.LineBreakToken
	}
	r := &Repairer{opts: opts, log: zap.NewNop()}
	for _, o := range options {
		o(r)
	}
	return r
}

// DefaultRepairer returns a Repairer with DefaultOptions and no logging.
func DefaultRepairer() *Repairer {
	return NewRepairer(DefaultOptions())
}

// Options returns a copy of the options in effect.
func (r *Repairer) Options() Options {
	return r.opts
}

// Fix repairs a single diagram, classifying its family first.
func Fix(content string) string {
	return DefaultRepairer().Fix(content)
}

// Fix repairs a single diagram, classifying its family first.
func (r *Repairer) Fix(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	family := Classify(content)
	text := Preprocess(content)
	return postprocess(r.repair(family, text))
}

// repair dispatches to the repairer of family. The switch is exhaustive over
// the Family enum.
func (r *Repairer) repair(family Family, text string) string {
	switch family {
	case FamilySequence:
		return repairSequence(text, r.opts.QuoteKeywords)
	case FamilyFlow:
		return repairFlowchart(text, r.opts.LineBreakToken)
	case FamilyClass:
		return repairClass(text)
	case FamilyER:
		return r.repairER(text)
	case FamilyState:
		return repairState(text)
	case FamilyUnknown:
		return repairGeneric(text)
	default:
		return repairGeneric(text)
	}
}

// RepairSequence repairs sequence diagram text with the default quoting
// keywords.
func RepairSequence(text string) string {
	return postprocess(repairSequence(Preprocess(text), DefaultOptions().QuoteKeywords))
}

// RepairFlowchart repairs flowchart/graph text.
func RepairFlowchart(text string) string {
	return postprocess(repairFlowchart(Preprocess(text), DefaultOptions().LineBreakToken))
}

// RepairClass repairs class diagram text.
func RepairClass(text string) string {
	return postprocess(repairClass(Preprocess(text)))
}

// RepairER repairs entity-relationship text, reconstructing it when possible.
func RepairER(text string) string {
	return postprocess(DefaultRepairer().repairER(Preprocess(text)))
}

// RepairState repairs state diagram text.
func RepairState(text string) string {
	return postprocess(repairState(Preprocess(text)))
}

// RepairGeneric applies the family-agnostic fallback repairs.
func RepairGeneric(text string) string {
	return postprocess(repairGeneric(Preprocess(text)))
}
