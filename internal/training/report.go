package training

import (
	"sort"
)

// buildReport groups compensated trainings by course. Courses are ordered by
// name, trainings inside a course by date.
func buildReport(rows []reportRow) *TrainerReport {
	type group struct {
		name      string
		id        int
		trainings []ReportTraining
	}

	byCourse := make(map[int]*group)
	var order []*group
	var total int64

	for _, row := range rows {
		g, ok := byCourse[row.CourseID]
		if !ok {
			g = &group{name: row.CourseName, id: row.CourseID}
			byCourse[row.CourseID] = g
			order = append(order, g)
		}
		g.trainings = append(g.trainings, ReportTraining{
			Date:              row.Date,
			CompensationCents: row.CompensationCents,
		})
		total += row.CompensationCents
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].name != order[j].name {
			return order[i].name < order[j].name
		}
		return order[i].id < order[j].id
	})

	report := &TrainerReport{
		Courses:                make([]ReportCourse, 0, len(order)),
		TotalCompensationCents: total,
	}
	for _, g := range order {
		sort.SliceStable(g.trainings, func(i, j int) bool {
			return g.trainings[i].Date.Before(g.trainings[j].Date.Time)
		})
		report.Courses = append(report.Courses, ReportCourse{
			CourseName: g.name,
			Trainings:  g.trainings,
		})
	}
	return report
}
