package domain

// MaxPayloadBytes is the per-item payload cap (20 MiB). It applies to
// individual uploaded files and to the serialized byte length of pasted text.
const MaxPayloadBytes int64 = 20 * 1024 * 1024

// WithinSizeLimit reports whether a payload of sizeBytes may be accepted.
// The boundary is inclusive: exactly MaxPayloadBytes passes.
func WithinSizeLimit(sizeBytes int64) bool {
	return sizeBytes <= MaxPayloadBytes
}
