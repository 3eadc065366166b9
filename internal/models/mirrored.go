package models

import "time"

// MirroredMovie is a [Movie] as stored in the SQLite catalog mirror.
type MirroredMovie struct {
	Movie
	id        string
	sequence  int
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewMirroredMovie wraps movie with a sequence number and fresh timestamps. The ID is assigned on insert.
func NewMirroredMovie(sequence int, movie Movie) *MirroredMovie {
	now := time.Now()
	return &MirroredMovie{Movie: movie, sequence: sequence, createdAt: now, updatedAt: now}
}

func (m *MirroredMovie) ID() string            { return m.id }
func (m *MirroredMovie) Sequence() int         { return m.sequence }
func (m *MirroredMovie) CreatedAt() time.Time  { return m.createdAt }
func (m *MirroredMovie) UpdatedAt() time.Time  { return m.updatedAt }
func (m *MirroredMovie) DeletedAt() *time.Time { return m.deletedAt }

func (m *MirroredMovie) SetID(id string)           { m.id = id }
func (m *MirroredMovie) SetSequence(sequence int)  { m.sequence = sequence }
func (m *MirroredMovie) SetCreatedAt(t time.Time)  { m.createdAt = t }
func (m *MirroredMovie) SetUpdatedAt(t time.Time)  { m.updatedAt = t }
func (m *MirroredMovie) SetDeletedAt(t *time.Time) { m.deletedAt = t }
