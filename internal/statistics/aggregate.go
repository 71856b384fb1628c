package statistics

import (
	"sort"

	"clubpay/internal/api"
)

type sessionKey struct {
	courseID int
	date     api.Date
}

type bucket struct {
	id       int
	name     string
	sessions [4]map[sessionKey]struct{}
	cents    [4]int64
}

// Summarize folds compensated trainings into per-group quarterly figures.
// Co-taught sessions (same course and day, different trainers) count once,
// while every trainer's compensation is added.
func Summarize(rows []compensatedRow, groupBy GroupBy) []Summary {
	buckets := make(map[int]*bucket)

	for _, row := range rows {
		id, name := row.CourseID, row.CourseName
		if groupBy == GroupByCostCenter {
			id, name = row.CostCenterID, row.CostCenterName
		}

		b, ok := buckets[id]
		if !ok {
			b = &bucket{id: id, name: name}
			for q := range b.sessions {
				b.sessions[q] = make(map[sessionKey]struct{})
			}
			buckets[id] = b
		}

		q := row.Date.Quarter() - 1
		b.sessions[q][sessionKey{courseID: row.CourseID, date: row.Date}] = struct{}{}
		b.cents[q] += row.CompensationCents
	}

	summaries := make([]Summary, 0, len(buckets))
	for _, b := range buckets {
		summaries = append(summaries, b.summary(groupBy))
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Name != summaries[j].Name {
			return summaries[i].Name < summaries[j].Name
		}
		return groupID(summaries[i]) < groupID(summaries[j])
	})
	return summaries
}

func (b *bucket) summary(groupBy GroupBy) Summary {
	id := b.id
	s := Summary{Name: b.name}
	if groupBy == GroupByCostCenter {
		s.CostCenterID = &id
	} else {
		s.CourseID = &id
	}

	s.TrainingCountQ1, s.CompensationCentsQ1 = len(b.sessions[0]), b.cents[0]
	s.TrainingCountQ2, s.CompensationCentsQ2 = len(b.sessions[1]), b.cents[1]
	s.TrainingCountQ3, s.CompensationCentsQ3 = len(b.sessions[2]), b.cents[2]
	s.TrainingCountQ4, s.CompensationCentsQ4 = len(b.sessions[3]), b.cents[3]

	// A session key belongs to exactly one quarter, so the totals are plain sums.
	s.TrainingCountTotal = s.TrainingCountQ1 + s.TrainingCountQ2 + s.TrainingCountQ3 + s.TrainingCountQ4
	s.CompensationCentsTotal = s.CompensationCentsQ1 + s.CompensationCentsQ2 + s.CompensationCentsQ3 + s.CompensationCentsQ4
	return s
}

func groupID(s Summary) int {
	if s.CourseID != nil {
		return *s.CourseID
	}
	if s.CostCenterID != nil {
		return *s.CostCenterID
	}
	return 0
}
