package effectchain

// Context provides environmental information that effect units need
// at configure time.
type Context struct {
	SampleRate float64
}
