package queue

const (
	TypeBackfillShipInfo = "certificate:backfill_ship_info"
)

type BackfillShipInfoPayload struct {
	Limit int `json:"limit"`
}
