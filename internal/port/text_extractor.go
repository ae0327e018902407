package port

// TextExtractor turns an uploaded document into plaintext.
type TextExtractor interface {
	ExtractText(document []byte) (string, error)
}
