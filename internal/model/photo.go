package model

import "time"

// PhotoID uniquely identifies a stored photo
type PhotoID string

// Photo is a stored photo record. Photo bytes live alongside their metadata;
// the coordinator only ever reads them back whole to serve or compare.
type Photo struct {
	ID          PhotoID
	RoomID      RoomID
	UploadedBy  PlayerID
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}
