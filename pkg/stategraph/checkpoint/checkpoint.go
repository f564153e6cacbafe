package checkpoint

import (
	"encoding/json"
	"time"
)

// Version is the current checkpoint format version. Increment on
// breaking changes to the checkpoint structure.
const Version = 1

// Checkpoint is one persisted snapshot of workflow state.
type Checkpoint struct {
	Version   int       `json:"version"`
	ThreadID  string    `json:"thread_id"`
	NodeID    string    `json:"node_id"`
	Sequence  int       `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`

	// State is the JSON-serialized workflow state after NodeID ran.
	State json.RawMessage `json:"state"`

	// NextNode is where execution continues on resume. After an
	// interrupt this is NodeID itself, so the paused node replays.
	NextNode string `json:"next_node"`

	// PrevNodeID records the preceding node, for debugging.
	PrevNodeID string `json:"prev_node_id,omitempty"`

	// Interrupt fields, set when the checkpoint records a pause.
	Interrupted    bool   `json:"interrupted,omitempty"`
	InterruptQuery string `json:"interrupt_query,omitempty"`
}

// New creates a checkpoint. State must already be JSON-serialized;
// sequence and timestamp are assigned by the store on Save.
func New(threadID, nodeID string, state []byte, nextNode string) *Checkpoint {
	return &Checkpoint{
		Version:  Version,
		ThreadID: threadID,
		NodeID:   nodeID,
		State:    state,
		NextNode: nextNode,
	}
}

// WithPrevNode sets the preceding node ID.
func (c *Checkpoint) WithPrevNode(prevNodeID string) *Checkpoint {
	c.PrevNodeID = prevNodeID
	return c
}

// WithInterrupt marks the checkpoint as a pause awaiting human input.
func (c *Checkpoint) WithInterrupt(query string) *Checkpoint {
	c.Interrupted = true
	c.InterruptQuery = query
	return c
}

// Marshal serializes the checkpoint to JSON.
func (c *Checkpoint) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

// Unmarshal deserializes a checkpoint from JSON.
func Unmarshal(data []byte) (*Checkpoint, error) {
	var c Checkpoint
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
