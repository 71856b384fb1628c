package payment

import (
	"context"
	"sort"
)

// ListCompensations returns one line per trainer paid by the payment.
func (s *service) ListCompensations(ctx context.Context, paymentID int) ([]CompensationLine, error) {
	if _, err := s.repo.GetPayment(ctx, paymentID); err != nil {
		return nil, err
	}

	trainings, err := s.repo.ListCompensatedTrainings(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	snapshots, err := s.repo.ListSnapshots(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	return groupCompensations(trainings, snapshots), nil
}

// groupCompensations folds a payment's trainings into one line per trainer.
// The IBAN always comes from the snapshot taken at settlement.
func groupCompensations(trainings []compensatedTraining, snapshots []TrainerIBANSnapshot) []CompensationLine {
	ibans := make(map[int]string, len(snapshots))
	for _, snap := range snapshots {
		ibans[snap.UserID] = snap.IBAN
	}

	index := make(map[int]int)
	lines := []CompensationLine{}
	for _, t := range trainings {
		i, ok := index[t.UserID]
		if !ok {
			i = len(lines)
			index[t.UserID] = i
			lines = append(lines, CompensationLine{
				User: CompensationUser{ID: t.UserID, Name: t.TrainerName, IBAN: ibans[t.UserID]},
			})
		}
		lines[i].TotalTrainings++
		lines[i].TotalCompensationCents += t.CompensationCents
	}

	sort.SliceStable(lines, func(a, b int) bool {
		if lines[a].User.Name != lines[b].User.Name {
			return lines[a].User.Name < lines[b].User.Name
		}
		return lines[a].User.ID < lines[b].User.ID
	})
	return lines
}
