package session

// FlashKind classifies a one-shot notice carried across a redirect.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashWarning FlashKind = "warning"
)

// Flash is a one-shot notice. It is written by a redirect decision and
// consumed exactly once by the next rendered page.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

const flashKey = "_flash"

// AddFlash appends a notice to the session.
func AddFlash(s *Session, kind FlashKind, message string) {
	if s == nil {
		return
	}
	flashes := decodeFlashes(s)
	flashes = append(flashes, Flash{Kind: kind, Message: message})
	encoded := make([]any, 0, len(flashes))
	for _, f := range flashes {
		encoded = append(encoded, map[string]any{
			"kind":    string(f.Kind),
			"message": f.Message,
		})
	}
	s.Set(flashKey, encoded)
}

// PopFlashes returns all pending notices and clears them.
func PopFlashes(s *Session) []Flash {
	if s == nil {
		return nil
	}
	flashes := decodeFlashes(s)
	s.Delete(flashKey)
	return flashes
}

// decodeFlashes reads the flash slice back out of the data bag. Values
// arrive as []any of maps after a JSON round-trip through the store, so
// decoding is shape-tolerant.
func decodeFlashes(s *Session) []Flash {
	raw, ok := s.Get(flashKey)
	if !ok {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	flashes := make([]Flash, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		kind, _ := m["kind"].(string)
		message, _ := m["message"].(string)
		flashes = append(flashes, Flash{Kind: FlashKind(kind), Message: message})
	}
	return flashes
}
