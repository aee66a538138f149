package domain

// Attachment is a payload accepted for delivery. Compression produces a new
// Attachment record rather than mutating the original; OriginalSize always
// refers to the bytes as uploaded, CompressedSize is zero until compression
// has been applied.
type Attachment struct {
	Filename       string
	MimeType       string
	Data           []byte
	OriginalSize   int64
	CompressedSize int64
}
