package submission

import "strings"

// Pure list transformations backing the submissions views. All of them
// preserve the relative order of their input.

// Filter keeps submissions whose campaign title, brand or content contains
// the query (case-insensitive) AND whose status matches exactly. An empty
// query matches everything; an empty status disables the status filter.
func Filter(subs []*Submission, query string, status Status) []*Submission {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]*Submission, 0, len(subs))
	for _, sub := range subs {
		if query != "" {
			haystack := strings.ToLower(sub.CampaignTitle + " " + sub.Brand + " " + sub.Content)
			if !strings.Contains(haystack, query) {
				continue
			}
		}
		if status != "" && sub.Status != status {
			continue
		}
		out = append(out, sub)
	}
	return out
}

func CountByStatus(subs []*Submission) map[Status]int {
	counts := make(map[Status]int)
	for _, sub := range subs {
		counts[sub.Status]++
	}
	return counts
}

// ApprovedPoints sums the reward points of approved submissions.
func ApprovedPoints(subs []*Submission) int64 {
	var sum int64
	for _, sub := range subs {
		if sub.Status == StatusApproved {
			sum += sub.RewardPoints
		}
	}
	return sum
}
