package jsonc

type parseOpts struct {
	path     string
	validate bool
}

type ParseOption func(*parseOpts)

// WithPath records the source path on the resulting Document.
func WithPath(p string) ParseOption {
	return func(o *parseOpts) { o.path = p }
}

// WithValidate additionally checks that the input, with comments and
// trailing commas stripped, is structurally valid JSON.
func WithValidate() ParseOption {
	return func(o *parseOpts) { o.validate = true }
}
