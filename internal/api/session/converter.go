package session

import "github.com/futig/ai-tutor/internal/entity"

// toSessionDTO converts a session snapshot to SessionDTO
func toSessionDTO(snap entity.SessionSnapshot) *entity.SessionDTO {
	return &entity.SessionDTO{
		ID:              snap.ID,
		CurrentQuestion: snap.CurrentQuestion,
		CurrentAnswer:   snap.CurrentAnswer,
		HistorySize:     snap.HistorySize,
		CreatedAt:       snap.CreatedAt,
	}
}

func toHistoryDTO(items []entity.NumberedRecord, total int) *entity.HistoryDTO {
	dto := &entity.HistoryDTO{
		Items: make([]entity.HistoryItemDTO, 0, len(items)),
		Total: total,
	}
	for _, it := range items {
		dto.Items = append(dto.Items, entity.HistoryItemDTO{
			Number:   it.Number,
			Question: it.Question,
			Answer:   it.Answer,
		})
	}
	return dto
}
