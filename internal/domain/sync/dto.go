package sync

const StatusSuccess = "success"

// BatchResponse - ответ на пакет, который понимают офлайн-клиенты.
type BatchResponse struct {
	Status        string `json:"status"`
	SyncedCount   int    `json:"synced_count"`
	TotalReceived int    `json:"total_received"`
	SkippedCount  int    `json:"skipped_count"`
}

func NewBatchResponse(r *Report) BatchResponse {
	return BatchResponse{
		Status:        StatusSuccess,
		SyncedCount:   r.Synced,
		TotalReceived: r.Received,
		SkippedCount:  r.Skipped,
	}
}

type StatusResponse struct {
	Status      string `json:"status"`
	Counts      Counts `json:"counts"`
	LastUpdated string `json:"last_updated"`
}

func NewStatusResponse(s *Status) StatusResponse {
	return StatusResponse{Status: "ok", Counts: s.Counts, LastUpdated: s.LastUpdated}
}
