package segment

import "sort"

// Interleave merges two channels' rendered segment lists into one globally
// ordered concatenation plan. Entries sort by start time; on an exact tie the
// left channel precedes the right. The sort is stable, so equal keys keep
// their input order. No rendered file is modified, only referenced.
func Interleave(left, right []RenderedSegment) []RenderedSegment {
	plan := make([]RenderedSegment, 0, len(left)+len(right))
	plan = append(plan, left...)
	plan = append(plan, right...)
	sort.SliceStable(plan, func(i, j int) bool {
		if plan[i].Start != plan[j].Start {
			return plan[i].Start < plan[j].Start
		}
		return plan[i].Channel < plan[j].Channel
	})
	return plan
}
