package dom

// SourceSpan records where in the input a node was parsed. Offsets are
// byte positions with End exclusive; lines and columns are 1-indexed.
// Spans never take part in serialization or structural equality.
type SourceSpan struct {
	Start       int
	End         int
	StartLine   int
	EndLine     int
	StartColumn int
	EndColumn   int
}
