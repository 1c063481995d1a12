package xdf

import "fmt"

// ChannelFormat is the declared per-sample value type of a stream.
type ChannelFormat int

const (
	FormatInt8 ChannelFormat = iota
	FormatInt16
	FormatInt32
	FormatInt64
	FormatFloat32
	FormatDouble64
	FormatString
)

func (f ChannelFormat) String() string {
	switch f {
	case FormatInt8:
		return "int8"
	case FormatInt16:
		return "int16"
	case FormatInt32:
		return "int32"
	case FormatInt64:
		return "int64"
	case FormatFloat32:
		return "float32"
	case FormatDouble64:
		return "double64"
	case FormatString:
		return "string"
	default:
		return "unknown"
	}
}

// BytesPerSample returns the on-disk width of one channel value for
// numeric formats. It panics for FormatString, whose values are
// length-prefixed rather than fixed-width; callers must branch on
// IsNumeric first.
func (f ChannelFormat) BytesPerSample() int {
	switch f {
	case FormatInt8:
		return 1
	case FormatInt16:
		return 2
	case FormatInt32:
		return 4
	case FormatInt64:
		return 8
	case FormatFloat32:
		return 4
	case FormatDouble64:
		return 8
	default:
		panic("xdf: BytesPerSample called on non-numeric format")
	}
}

// IsNumeric reports whether f is a fixed-width numeric format.
func (f ChannelFormat) IsNumeric() bool {
	return f != FormatString
}

// IsInteger reports whether f rounds to integers after interpolation
// (spec §4.7).
func (f ChannelFormat) IsInteger() bool {
	switch f {
	case FormatInt8, FormatInt16, FormatInt32, FormatInt64:
		return true
	default:
		return false
	}
}

// ParseChannelFormat maps the XML channel_format string onto a
// ChannelFormat, returning ErrUnknownChannelFormat if it is not one of
// the seven declared formats.
func ParseChannelFormat(s string) (ChannelFormat, error) {
	switch s {
	case "int8":
		return FormatInt8, nil
	case "int16":
		return FormatInt16, nil
	case "int32":
		return FormatInt32, nil
	case "int64":
		return FormatInt64, nil
	case "float32":
		return FormatFloat32, nil
	case "double64":
		return FormatDouble64, nil
	case "string":
		return FormatString, nil
	default:
		return 0, newErr(ErrUnknownChannelFormat, "ParseChannelFormat", fmt.Errorf("unrecognized channel_format %q", s))
	}
}

// XMLNode is a minimal generic tree used only for the free-form
// desc/footer subtrees of a stream header (spec §3, §9).
type XMLNode struct {
	XMLName  string
	Attrs    map[string]string
	Text     string
	Children []*XMLNode
}

// Child returns the first direct child named tag, or nil.
func (n *XMLNode) Child(tag string) *XMLNode {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.XMLName == tag {
			return c
		}
	}
	return nil
}

// StreamInfo is the metadata parsed from a stream's StreamHeader (and,
// once seen, its StreamFooter).
type StreamInfo struct {
	Name           string
	Type           string
	ChannelCount   int
	NominalSRate   float64
	ChannelFormat  ChannelFormat
	EffectiveSRate float64
	Desc           *XMLNode
	Footer         *XMLNode
}

// Sample is one decoded timestamped record: Values holds nchns numeric
// values for numeric streams, or is nil for string streams, in which
// case Strings holds nchns decoded values.
type Sample struct {
	Values  []float64
	Strings []string
}

// Stream is a finalized, post-processed stream: the StreamBuffer of
// spec §3 has transitioned into its terminal state and is now owned by
// the Result that contains it.
type Stream struct {
	ID         uint32
	Info       StreamInfo
	TimeStamps []float64

	// Exactly one of Numeric/Strings is populated, matching
	// Info.ChannelFormat. Numeric is an N x ChannelCount row-major
	// matrix; Strings is N rows of ChannelCount strings each.
	Numeric [][]float64
	Strings [][]string
}

// NumSamples returns len(TimeStamps).
func (s *Stream) NumSamples() int {
	return len(s.TimeStamps)
}

// Result is the return value of Load: every stream in file order, plus
// the flattened file-header dictionary.
type Result struct {
	Streams    []*Stream
	FileHeader map[string]string
}

// streamBuffer is the transient, in-progress counterpart of Stream
// (spec §3, §9): it accumulates chunk-by-chunk state while the Chunk
// Decoder is still reading the file and is discarded once finalize
// produces the corresponding Stream.
type streamBuffer struct {
	id   uint32
	info StreamInfo

	nchns int
	srate float64
	fmt   ChannelFormat
	tdiff float64

	timestampChunks [][]float64
	numericChunks   [][][]float64
	stringChunks    [][][]string

	clockTimes  []float64
	clockValues []float64

	lastTimestamp float64
}

func newStreamBuffer(id uint32, info StreamInfo) *streamBuffer {
	tdiff := 0.0
	if info.NominalSRate > 0 {
		tdiff = 1.0 / info.NominalSRate
	}
	return &streamBuffer{
		id:    id,
		info:  info,
		nchns: info.ChannelCount,
		srate: info.NominalSRate,
		fmt:   info.ChannelFormat,
		tdiff: tdiff,
	}
}
