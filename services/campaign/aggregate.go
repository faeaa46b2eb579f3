package campaign

import "time"

// The dashboard summaries are pure functions over a supplied campaign slice;
// they hold no state and are recomputed on every read.

type Summary struct {
	Active            int   `json:"active"`
	Ended             int   `json:"ended"`
	TotalParticipants int64 `json:"total_participants"`
	TotalSubmissions  int64 `json:"total_submissions"`
}

func CountByStatus(campaigns []*Campaign, now time.Time) map[Status]int {
	counts := make(map[Status]int)
	for _, c := range campaigns {
		counts[c.Status(now)]++
	}
	return counts
}

func TotalParticipants(campaigns []*Campaign) int64 {
	var sum int64
	for _, c := range campaigns {
		sum += c.ParticipantCount
	}
	return sum
}

func TotalSubmissions(campaigns []*Campaign) int64 {
	var sum int64
	for _, c := range campaigns {
		sum += c.SubmissionCount
	}
	return sum
}

func Summarize(campaigns []*Campaign, now time.Time) Summary {
	counts := CountByStatus(campaigns, now)
	return Summary{
		Active:            counts[StatusActive],
		Ended:             counts[StatusEnded],
		TotalParticipants: TotalParticipants(campaigns),
		TotalSubmissions:  TotalSubmissions(campaigns),
	}
}
