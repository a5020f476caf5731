package publish

import (
	"encoding/json"
	"errors"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "propset",
		Category:    "config",
		Version:     "v1",
		Description: "Finalized metadata field configuration snapshot",
		Factory:     func() any { return &Snapshot{} },
	})
	if err != nil {
		panic("failed to register Snapshot payload: " + err.Error())
	}
}

// SnapshotType is the message type of configuration snapshots.
var SnapshotType = message.Type{Domain: "propset", Category: "config", Version: "v1"}

func (s *Snapshot) Schema() message.Type { return SnapshotType }

func (s *Snapshot) Validate() error {
	if s.ID == "" {
		return errors.New("snapshot ID is required")
	}
	if len(s.SelectedModels) == 0 {
		return errors.New("snapshot has no selected models")
	}
	return nil
}

func (s *Snapshot) MarshalJSON() ([]byte, error) {
	type Alias Snapshot
	return json.Marshal((*Alias)(s))
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	type Alias Snapshot
	return json.Unmarshal(data, (*Alias)(s))
}
