package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrNoFreeRoom       = errors.New("no free room")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// RoomNotFoundError carries the requested number; it matches ErrRoomNotFound.
type RoomNotFoundError struct {
	Number int
}

func (e *RoomNotFoundError) Error() string {
	return fmt.Sprintf("room %d does not exist", e.Number)
}

func (e *RoomNotFoundError) Is(target error) bool { return target == ErrRoomNotFound }
