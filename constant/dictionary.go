package constant

// AlphabetSize is the number of letters a dictionary word can be built from.
const AlphabetSize = 26

const (
	DefaultCommentPrefix = "#"
	DefaultEncoding      = "utf-8"
	DefaultConcurrency   = 4
)
