package llm

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// DecodeArgs unmarshals tool-call arguments into v.
// Models routinely emit almost-JSON (trailing commas, single quotes,
// unquoted keys), so a failed parse is retried through jsonrepair
// before giving up.
func DecodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("decode tool arguments: empty payload")
	}

	if err := json.Unmarshal(raw, v); err == nil {
		return nil
	}

	repaired, err := jsonrepair.JSONRepair(string(raw))
	if err != nil {
		return fmt.Errorf("repair tool arguments: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("decode tool arguments: %w", err)
	}
	return nil
}
