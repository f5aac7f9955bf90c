package survey

import (
	"fmt"
	"sort"
	"strings"
)

// Validate checks a config against every structural invariant and returns
// the full list of violations. It never stops at the first failure: the
// authoring UI shows all problems in one pass. A nil result means the config
// may go live.
//
// Validation is pure and idempotent. Cycles in the graph are legal ("ask
// again" patterns); each transition is driven by one new answer, so loop
// termination is the runtime's attempt budget, not a graph property.
func Validate(cfg *Config) Violations {
	var vs Violations

	if cfg.Enabled && len(cfg.Questions) == 0 {
		vs = append(vs, Violation{
			Invariant: InvariantEmptySurvey,
			Detail:    "enabled survey has no questions",
		})
	}

	ids := make(map[string]bool, len(cfg.Questions))
	for i := range cfg.Questions {
		q := &cfg.Questions[i]
		if q.ID == "" {
			vs = append(vs, Violation{
				Invariant: InvariantInvalidQuestion,
				Detail:    fmt.Sprintf("question at index %d has no id", i),
			})
			continue
		}
		if ids[q.ID] {
			vs = append(vs, Violation{
				QuestionID: q.ID,
				Invariant:  InvariantDuplicateID,
				Detail:     "id is used by more than one question",
			})
		}
		ids[q.ID] = true
	}

	if cfg.StartQuestion != "" && !ids[cfg.StartQuestion] {
		vs = append(vs, Violation{
			Invariant: InvariantBrokenReference,
			Detail:    fmt.Sprintf("start_question %q does not exist", cfg.StartQuestion),
		})
	}

	for i := range cfg.Questions {
		q := &cfg.Questions[i]
		if q.ID == "" {
			continue
		}
		vs = append(vs, validateQuestion(cfg, q, ids)...)
	}

	return vs
}

func validateQuestion(cfg *Config, q *Question, ids map[string]bool) Violations {
	var vs Violations

	fail := func(inv Invariant, format string, args ...any) {
		vs = append(vs, Violation{
			QuestionID: q.ID,
			Invariant:  inv,
			Detail:     fmt.Sprintf(format, args...),
		})
	}

	checkRef := func(field string, t Target) {
		if t.Defined() && !t.IsTerminal() && !ids[t.ID()] {
			fail(InvariantBrokenReference, "%s references missing question %q", field, t.ID())
		}
	}

	if cfg.Enabled && strings.TrimSpace(q.Text) == "" {
		fail(InvariantInvalidQuestion, "active question has empty text")
	}

	checkRef("next_on_yes", q.NextOnYes)
	checkRef("next_on_no", q.NextOnNo)
	checkRef("next", q.Next)
	for opt, id := range q.NextByOption {
		if !ids[id] {
			fail(InvariantBrokenReference, "next_by_option[%q] references missing question %q", opt, id)
		}
	}
	for _, rb := range q.NextByRange {
		checkRef(fmt.Sprintf("next_by_range[%d,%d]", rb.Min, rb.Max), rb.Next)
	}

	switch q.Type {
	case TypeYesNo:
		if !q.NextOnYes.Defined() {
			fail(InvariantMissingBranch, "next_on_yes is not defined")
		}
		if !q.NextOnNo.Defined() {
			fail(InvariantMissingBranch, "next_on_no is not defined")
		}
		if q.Next.Defined() {
			fail(InvariantInvalidQuestion, "yes_no questions branch via next_on_yes/next_on_no, not next")
		}

	case TypeMultipleChoice:
		vs = append(vs, validateOptions(q)...)

	case TypeRating:
		if q.MinValue >= q.MaxValue {
			fail(InvariantInvalidQuestion, "min_value %d must be below max_value %d", q.MinValue, q.MaxValue)
		} else if len(q.NextByRange) > 0 {
			vs = append(vs, validateRanges(q)...)
		}

	case TypeOpenEnded:
		if q.MaxLength <= 0 {
			fail(InvariantInvalidQuestion, "max_length must be positive, got %d", q.MaxLength)
		}

	default:
		fail(InvariantInvalidQuestion, "unknown question type %q", q.Type)
	}

	// Transition fields that are never legal for the type.
	if q.Type != TypeYesNo && (q.NextOnYes.Defined() || q.NextOnNo.Defined()) {
		fail(InvariantInvalidQuestion, "next_on_yes/next_on_no are only legal on yes_no questions")
	}
	if q.Type != TypeMultipleChoice && len(q.NextByOption) > 0 {
		fail(InvariantInvalidQuestion, "next_by_option is only legal on multiple_choice questions")
	}
	if q.Type != TypeRating && len(q.NextByRange) > 0 {
		fail(InvariantInvalidQuestion, "next_by_range is only legal on rating questions")
	}

	return vs
}

func validateOptions(q *Question) Violations {
	var vs Violations
	fail := func(inv Invariant, format string, args ...any) {
		vs = append(vs, Violation{QuestionID: q.ID, Invariant: inv, Detail: fmt.Sprintf(format, args...)})
	}

	if len(q.Options) == 0 {
		fail(InvariantInvalidQuestion, "multiple_choice question has no options")
		return vs
	}
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			fail(InvariantInvalidQuestion, "options must be non-empty strings")
			continue
		}
		if seen[opt] {
			fail(InvariantInvalidQuestion, "duplicate option %q", opt)
		}
		seen[opt] = true
	}

	if len(q.NextByOption) > 0 {
		for opt := range q.NextByOption {
			if !seen[opt] {
				fail(InvariantOptionCoverage, "next_by_option references unknown option %q", opt)
			}
		}
		if !q.Next.Defined() {
			for _, opt := range q.Options {
				if _, ok := q.NextByOption[opt]; !ok {
					fail(InvariantOptionCoverage, "option %q has no branch and no fallback next is defined", opt)
				}
			}
		}
	}

	return vs
}

// validateRanges checks that next_by_range tiles [min_value, max_value]
// exactly: inclusive on both ends, no gaps, no overlaps.
func validateRanges(q *Question) Violations {
	var vs Violations
	fail := func(format string, args ...any) {
		vs = append(vs, Violation{QuestionID: q.ID, Invariant: InvariantRangeCoverage, Detail: fmt.Sprintf(format, args...)})
	}

	ranges := make([]RangeBranch, len(q.NextByRange))
	copy(ranges, q.NextByRange)
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Min < ranges[j].Min })

	for _, rb := range ranges {
		if rb.Min > rb.Max {
			fail("range [%d,%d] is inverted", rb.Min, rb.Max)
			return vs
		}
		if rb.Min < q.MinValue || rb.Max > q.MaxValue {
			fail("range [%d,%d] falls outside the rating domain [%d,%d]", rb.Min, rb.Max, q.MinValue, q.MaxValue)
			return vs
		}
	}

	if ranges[0].Min != q.MinValue {
		fail("values %d..%d are not covered", q.MinValue, ranges[0].Min-1)
	}
	for i := 1; i < len(ranges); i++ {
		prev, cur := ranges[i-1], ranges[i]
		switch {
		case cur.Min <= prev.Max:
			fail("ranges [%d,%d] and [%d,%d] overlap", prev.Min, prev.Max, cur.Min, cur.Max)
		case cur.Min > prev.Max+1:
			fail("values %d..%d are not covered", prev.Max+1, cur.Min-1)
		}
	}
	if last := ranges[len(ranges)-1]; last.Max != q.MaxValue {
		fail("values %d..%d are not covered", last.Max+1, q.MaxValue)
	}

	return vs
}
